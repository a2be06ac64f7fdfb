package httpserver

import (
	"errors"
	"net/http"

	"importexport-hub/internal/domain"
	productrepo "importexport-hub/internal/repository/product"
	productsvc "importexport-hub/internal/service/product"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("search"))
		if err != nil {
			respondFail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		respondData(c, nonNilProducts(products))
	}
}

func latestProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Latest(c.Request.Context())
		if err != nil {
			respondFail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		respondData(c, nonNilProducts(products))
	}
}

func getProductHandler(svc ProductService, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondFail(c, logicalStatus(strict, http.StatusNotFound), "Product not found")
				return
			}
			respondFail(c, logicalStatus(strict, http.StatusInternalServerError), "Server error")
			return
		}
		respondData(c, product)
	}
}

func createProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid product data")
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, productsvc.ErrInvalidProduct) {
				respondFail(c, http.StatusBadRequest, "Invalid product data")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Failed to add product")
			return
		}
		c.JSON(http.StatusOK, envelope{Success: true, Message: "Product added successfully", InsertedID: created.ID})
	}
}

func updateProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productrepo.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "Invalid update data")
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondFail(c, http.StatusNotFound, "Product not found")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		c.JSON(http.StatusOK, envelope{Success: true, Message: "Product updated", Data: updated})
	}
}

func deleteProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondFail(c, http.StatusNotFound, "Product not found")
				return
			}
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		respondMessage(c, "Product deleted")
	}
}

func listExportsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Query("user")
		if owner == "" {
			respondFail(c, http.StatusBadRequest, "User email required")
			return
		}
		products, err := svc.ListByOwner(c.Request.Context(), owner, c.Query("search"))
		if err != nil {
			respondFail(c, http.StatusInternalServerError, "Server error")
			return
		}
		respondData(c, nonNilProducts(products))
	}
}

func nonNilProducts(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
