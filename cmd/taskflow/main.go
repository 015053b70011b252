package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"taskflow/internal/app"
	"taskflow/internal/app/consumers"
	"taskflow/internal/app/deps"
	"taskflow/internal/app/services"
	dl "taskflow/internal/core/domain/logging"
	restorereminders "taskflow/internal/core/services/restore_reminders"
	"time"

	"github.com/robfig/cron/v3"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	shutdownConsumers := consumers.InitConsumers(deps, services)

	restoreReminders(deps, services)
	stopCron := startReminderRestoreCron(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	stopCron()
	shutdownConsumers()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

// restoreReminders re-arms timers for upcoming tasks. Pending reminders
// live only in process memory, so each boot starts from the database.
func restoreReminders(deps *deps.Deps, services *services.Services) {
	result, err := services.RestoreReminders.Run(context.Background(), restorereminders.Input{})
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not restore reminders.", dl.Entry("err", err))
		return
	}
	deps.Logger.Info(
		context.Background(),
		"Reminders restored.",
		dl.Entry("armedCount", result.ArmedCount),
	)
}

func startReminderRestoreCron(deps *deps.Deps, services *services.Services) func() {
	c := cron.New()
	_, err := c.AddFunc(deps.Config.ReminderRestoreCrontab, func() {
		restoreReminders(deps, services)
	})
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not schedule reminder restore job.", dl.Entry("err", err))
		panic(err)
	}
	c.Start()
	deps.Logger.Info(
		context.Background(),
		"Reminder restore job scheduled.",
		dl.Entry("crontab", deps.Config.ReminderRestoreCrontab),
	)
	return func() { <-c.Stop().Done() }
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
