package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	InsertedID string      `json:"insertedId,omitempty"`
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// logicalStatus picks the status for a business-rule failure: the legacy
// contract reports them as 200 with success:false, strict mode uses the
// proper code.
func logicalStatus(strict bool, status int) int {
	if strict {
		return status
	}
	return http.StatusOK
}
