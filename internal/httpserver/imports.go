package httpserver

import (
	"errors"
	"net/http"

	"importexport-hub/internal/domain"
	ledgersvc "importexport-hub/internal/service/ledger"
	transfersvc "importexport-hub/internal/service/transfer"

	"github.com/gin-gonic/gin"
)

func transferHandler(svc TransferService, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in transfersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, logicalStatus(strict, http.StatusBadRequest), "Missing fields")
			return
		}
		err := svc.Transfer(c.Request.Context(), in)
		switch {
		case err == nil:
			respondMessage(c, "Product imported successfully")
		case errors.Is(err, transfersvc.ErrMissingFields):
			respondFail(c, logicalStatus(strict, http.StatusBadRequest), "Missing fields")
		case errors.Is(err, domain.ErrNotFound):
			respondFail(c, logicalStatus(strict, http.StatusNotFound), "Product not found")
		case errors.Is(err, transfersvc.ErrInsufficientStock):
			respondFail(c, logicalStatus(strict, http.StatusConflict), "Import quantity exceeds available stock")
		default:
			respondFail(c, logicalStatus(strict, http.StatusInternalServerError), "Server error")
		}
	}
}

func listImportsHandler(svc LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListByImporter(c.Request.Context(), c.Query("user"), c.Query("search"))
		if err != nil {
			if errors.Is(err, ledgersvc.ErrImporterRequired) {
				respondFail(c, http.StatusBadRequest, "User not provided")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		if records == nil {
			records = []domain.ImportRecord{}
		}
		respondData(c, records)
	}
}

func deleteImportHandler(svc LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			respondFail(c, http.StatusBadRequest, "Import ID missing")
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondFail(c, http.StatusNotFound, "Import not found")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		respondMessage(c, "Import removed successfully")
	}
}
