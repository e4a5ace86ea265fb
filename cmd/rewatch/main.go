package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"rewatch/internal/app"
	"rewatch/internal/app/consumers"
	"rewatch/internal/app/deps"
	"rewatch/internal/app/services"
	reconcilestartup "rewatch/internal/core/services/reconcile_startup"
	"syscall"
	"time"

	dl "rewatch/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	reconcile(deps, services)
	stopConsumers := consumers.InitConsumers(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, stopConsumers, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func reconcile(deps *deps.Deps, services *services.Services) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := services.ReconcileStartup.Run(ctx, reconcilestartup.Input{})
	if err != nil {
		// Reminders stay in the store, the next start retries.
		deps.Logger.Error(ctx, "Startup reconciliation failed.", dl.Entry("err", err))
		return
	}
	deps.Logger.Info(
		ctx,
		"Startup reconciliation done.",
		dl.Entry("cleared", result.Cleared),
		dl.Entry("armed", result.Armed),
	)
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("storeDriver", deps.Config.StoreDriver),
		dl.Entry("timerBackend", deps.Config.TimerBackend),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	deps *deps.Deps,
	stopConsumers func(),
	shutDownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	stopConsumers()
	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
