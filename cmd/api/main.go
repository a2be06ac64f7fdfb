package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"importexport-hub/internal/config"
	"importexport-hub/internal/db"
	"importexport-hub/internal/httpserver"
	importrepo "importexport-hub/internal/repository/importrecord"
	productrepo "importexport-hub/internal/repository/product"
	userrepo "importexport-hub/internal/repository/user"
	ledgersvc "importexport-hub/internal/service/ledger"
	productsvc "importexport-hub/internal/service/product"
	transfersvc "importexport-hub/internal/service/transfer"
	usersvc "importexport-hub/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	ledgerRepo := importrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)

	productService := productsvc.New(productRepo)
	transferService := transfersvc.New(productRepo, ledgerRepo)
	ledgerService := ledgersvc.New(ledgerRepo)
	userService := usersvc.New(userRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:  productService,
		TransferSvc: transferService,
		LedgerSvc:   ledgerService,
		UserSvc:     userService,
	}, httpserver.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		StrictStatus:   cfg.StrictStatus,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
