package app

import (
	"fmt"
	"net/http"
	"taskflow/internal/app/deps"
	"taskflow/internal/app/services"
	"taskflow/internal/http/handlers/auth"
	"taskflow/internal/http/handlers/events"
	createmeeting "taskflow/internal/http/handlers/meetings/create_meeting"
	deletemeeting "taskflow/internal/http/handlers/meetings/delete_meeting"
	listusermeetings "taskflow/internal/http/handlers/meetings/list_user_meetings"
	createtask "taskflow/internal/http/handlers/tasks/create_task"
	deletetask "taskflow/internal/http/handlers/tasks/delete_task"
	gettask "taskflow/internal/http/handlers/tasks/get_task"
	listusertasks "taskflow/internal/http/handlers/tasks/list_user_tasks"
	updatetask "taskflow/internal/http/handlers/tasks/update_task"
	login "taskflow/internal/http/handlers/users/log_in"
	logout "taskflow/internal/http/handlers/users/log_out"
	me "taskflow/internal/http/handlers/users/me"
	signup "taskflow/internal/http/handlers/users/sign_up"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))

	taskRouter := chi.NewRouter()
	taskRouter.Use(auth.SetAuthTokenToContext)
	taskRouter.Method(http.MethodPost, "/", createtask.New(s.CreateTask))
	taskRouter.Method(http.MethodGet, "/", listusertasks.New(s.ListUserTasks))
	taskRouter.Method(http.MethodGet, "/{taskID:[0-9]+}", gettask.New(s.GetTask))
	taskRouter.Method(http.MethodPatch, "/{taskID:[0-9]+}", updatetask.New(s.UpdateTask))
	taskRouter.Method(http.MethodDelete, "/{taskID:[0-9]+}", deletetask.New(s.DeleteTask))

	meetingRouter := chi.NewRouter()
	meetingRouter.Use(auth.SetAuthTokenToContext)
	meetingRouter.Method(http.MethodPost, "/", createmeeting.New(s.CreateMeeting))
	meetingRouter.Method(http.MethodGet, "/", listusermeetings.New(s.ListUserMeetings))
	meetingRouter.Method(http.MethodDelete, "/{meetingID:[0-9]+}", deletemeeting.New(s.DeleteMeeting))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/tasks", taskRouter)
	router.Mount("/meetings", meetingRouter)
	router.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, deps.SessionRepository),
	)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)
	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
