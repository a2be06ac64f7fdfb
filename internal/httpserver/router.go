package httpserver

import (
	"context"
	"log"
	"time"

	"importexport-hub/internal/domain"
	productrepo "importexport-hub/internal/repository/product"
	productsvc "importexport-hub/internal/service/product"
	transfersvc "importexport-hub/internal/service/transfer"
	usersvc "importexport-hub/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductService is the catalog surface the handlers consume.
type ProductService interface {
	List(ctx context.Context, search string) ([]domain.Product, error)
	Latest(ctx context.Context) ([]domain.Product, error)
	ListByOwner(ctx context.Context, owner, search string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// TransferService performs the stock transfer operation.
type TransferService interface {
	Transfer(ctx context.Context, in transfersvc.Input) error
}

// LedgerService reads and prunes import ledger entries.
type LedgerService interface {
	ListByImporter(ctx context.Context, importer, search string) ([]domain.ImportRecord, error)
	Delete(ctx context.Context, id string) error
}

// UserService maintains user profiles.
type UserService interface {
	Upsert(ctx context.Context, in usersvc.UpsertInput) (*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
}

// Deps bundles the services the router needs.
type Deps struct {
	ProductSvc  ProductService
	TransferSvc TransferService
	LedgerSvc   LedgerService
	UserSvc     UserService
}

// Options tunes router behavior.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// StrictStatus maps logical failures to HTTP error codes; the default
	// keeps the legacy 200-with-success:false contract.
	StrictStatus bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}
	if opts.RequestTimeout > 0 {
		router.Use(requestTimeout(opts.RequestTimeout))
	}

	router.GET("/", bannerHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/home/latest", latestProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc, opts.StrictStatus))
	router.POST("/products", createProductHandler(deps.ProductSvc))
	router.POST("/products/import", transferHandler(deps.TransferSvc, opts.StrictStatus))
	router.PUT("/products/:id", updateProductHandler(deps.ProductSvc))
	router.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))
	router.GET("/exports", listExportsHandler(deps.ProductSvc))

	router.GET("/imports", listImportsHandler(deps.LedgerSvc))
	router.DELETE("/imports/:id", deleteImportHandler(deps.LedgerSvc))

	router.PUT("/users", upsertUserHandler(deps.UserSvc))
	router.GET("/users/:email", getUserHandler(deps.UserSvc))

	return router
}

// requestTimeout bounds every store interaction through the request context.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
