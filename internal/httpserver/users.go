package httpserver

import (
	"errors"
	"net/http"

	"importexport-hub/internal/domain"
	usersvc "importexport-hub/internal/service/user"

	"github.com/gin-gonic/gin"
)

func upsertUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.UpsertInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "Email required")
			return
		}
		user, err := svc.Upsert(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, usersvc.ErrEmailRequired) {
				respondFail(c, http.StatusBadRequest, "Email required")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		respondData(c, user)
	}
}

func getUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Get(c.Request.Context(), c.Param("email"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				respondFail(c, http.StatusNotFound, "User not found")
			case errors.Is(err, usersvc.ErrEmailRequired):
				respondFail(c, http.StatusBadRequest, "Email required")
			default:
				respondFail(c, http.StatusInternalServerError, "Server error")
			}
			return
		}
		respondData(c, user)
	}
}
