package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/controller"
	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/middleware"
	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/http/router"
	"github.com/api-sage/wallet-ledger-service/src/internal/adapter/repository/implementations"
	"github.com/api-sage/wallet-ledger-service/src/internal/config"
	"github.com/api-sage/wallet-ledger-service/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := implementations.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := implementations.NewAccountRepository(db)
	transactionRepo := implementations.NewTransactionRepository(db)

	accountService := services.NewAccountService(accountRepo, services.DefaultAccountNumberGenerator)
	transactionService := services.NewTransactionService(accountRepo, transactionRepo, time.Now)

	accountController := controller.NewAccountController(accountService)
	transactionController := controller.NewTransactionController(transactionService)

	authMiddleware := middleware.ChannelAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash)
	mux := router.New(accountController, transactionController, authMiddleware)
	handler := middleware.RequestID()(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("wallet ledger service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
