package app

import (
	"net"
	"net/http"
	"rewatch/internal/app/deps"
	"rewatch/internal/app/services"
	"rewatch/internal/http/handlers/events"
	stashvideo "rewatch/internal/http/handlers/handoff/stash_video"
	takevideo "rewatch/internal/http/handlers/handoff/take_video"
	listintervals "rewatch/internal/http/handlers/intervals/list_intervals"
	clicknotification "rewatch/internal/http/handlers/notifications/click_notification"
	createreminder "rewatch/internal/http/handlers/reminders/create_reminder"
	deletereminder "rewatch/internal/http/handlers/reminders/delete_reminder"
	listreminders "rewatch/internal/http/handlers/reminders/list_reminders"
	snoozereminder "rewatch/internal/http/handlers/reminders/snooze_reminder"
	tabopener "rewatch/internal/implementations/tab_opener"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders, deps.Now))
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder, deps.Now))
	reminderRouter.Method(http.MethodDelete, "/{reminderID}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(
		http.MethodPost,
		"/{reminderID}/snooze",
		snoozereminder.New(s.SnoozeReminder, deps.Now),
	)

	notificationRouter := chi.NewRouter()
	notificationRouter.Method(
		http.MethodPost,
		"/{notificationID}/click",
		clicknotification.New(s.HandleNotificationClick),
	)

	handoffRouter := chi.NewRouter()
	handoffRouter.Method(http.MethodPut, "/", stashvideo.New(s.StashVideo))
	handoffRouter.Method(http.MethodGet, "/", takevideo.New(s.TakeVideo))

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Method(http.MethodGet, "/intervals", listintervals.New())
	router.Mount("/reminders", reminderRouter)
	router.Mount("/notifications", notificationRouter)
	router.Mount("/handoff", handoffRouter)
	router.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, tabopener.DefaultStream),
	)
	router.Method(
		http.MethodGet,
		"/metrics",
		promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}),
	)

	address := net.JoinHostPort(deps.Config.Host, strconv.Itoa(int(deps.Config.Port)))

	server := &http.Server{
		Handler: router,
		Addr:    address,
	}
	// Event streams never end on their own.
	server.RegisterOnShutdown(deps.SseServer.Close)
	return server
}
