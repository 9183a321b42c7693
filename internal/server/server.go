// Package server wires the application together and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/controllers"
	"github.com/kipngetich-lab/TukoShop-App/app/jobs"
	"github.com/kipngetich-lab/TukoShop-App/app/repositories"
	"github.com/kipngetich-lab/TukoShop-App/app/routes"
	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/config"
	"github.com/kipngetich-lab/TukoShop-App/pkg/database"
	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
	"github.com/kipngetich-lab/TukoShop-App/pkg/metrics"
	"github.com/kipngetich-lab/TukoShop-App/pkg/middleware"
	"github.com/kipngetich-lab/TukoShop-App/pkg/queue"
	"github.com/kipngetich-lab/TukoShop-App/pkg/reqid"
	"github.com/kipngetich-lab/TukoShop-App/pkg/router"
)

const workerCount = 2

// BuildRouter constructs the fully wired route table. Split from Run so
// commands like route:list can inspect routes without a database.
func BuildRouter() *router.Router {
	accounts := repositories.NewAccountRepository()
	products := repositories.NewProductRepository()
	carts := repositories.NewCartRepository()
	orders := repositories.NewOrderRepository()

	orderSvc := services.NewOrderService(carts, products, orders)
	orderSvc.OnCartClearFailure(func(buyer primitive.ObjectID, productIDs []primitive.ObjectID) {
		hexes := make([]string, 0, len(productIDs))
		for _, id := range productIDs {
			hexes = append(hexes, id.Hex())
		}
		if err := queue.Dispatch(&jobs.ClearCartJob{Buyer: buyer.Hex(), Products: hexes}); err != nil {
			logger.Error("dispatch cart reconciliation", "buyer", buyer.Hex(), "error", err)
		}
	})

	ctrls := routes.Controllers{
		Auth:    controllers.NewAuthController(services.NewAuthService(accounts)),
		Product: controllers.NewProductController(services.NewCatalogService(products)),
		Cart:    controllers.NewCartController(services.NewCartService(carts, products)),
		Order:   controllers.NewOrderController(orderSvc),
		Admin:   controllers.NewAdminController(services.NewAdminService(accounts, products, orders), orderSvc),
	}

	r := router.New()
	r.Use(
		reqid.Middleware,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware,
	)
	routes.Register(r, ctrls)
	return r
}

// Run boots the full application and blocks until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := database.Connect(connectCtx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(shutdownCtx); err != nil {
			logger.Error("database disconnect", "error", err)
		}
	}()

	if err := database.EnsureIndexes(connectCtx); err != nil {
		return err
	}

	if config.QueueDriver() == "redis" {
		queue.SetDriver(queue.NewRedisDriver())
	}
	jobs.Register()
	queue.StartWorkers(ctx, workerCount)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildRouter().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
