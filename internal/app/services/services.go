package services

import (
	"taskflow/internal/app/deps"
	drl "taskflow/internal/core/domain/rate_limiter"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
	createmeeting "taskflow/internal/core/services/create_meeting"
	createtask "taskflow/internal/core/services/create_task"
	deletemeeting "taskflow/internal/core/services/delete_meeting"
	deletetask "taskflow/internal/core/services/delete_task"
	gettask "taskflow/internal/core/services/get_task"
	getuserbysessiontoken "taskflow/internal/core/services/get_user_by_session_token"
	listusermeetings "taskflow/internal/core/services/list_user_meetings"
	listusertasks "taskflow/internal/core/services/list_user_tasks"
	login "taskflow/internal/core/services/log_in"
	logout "taskflow/internal/core/services/log_out"
	ratelimiting "taskflow/internal/core/services/rate_limiting"
	restorereminders "taskflow/internal/core/services/restore_reminders"
	sendreminder "taskflow/internal/core/services/send_reminder"
	signup "taskflow/internal/core/services/sign_up"
	updatetask "taskflow/internal/core/services/update_task"
)

type Services struct {
	SignUp                services.Service[signup.Input, signup.Result]
	LogIn                 services.Service[login.Input, login.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	CreateTask    services.Service[createtask.Input, createtask.Result]
	UpdateTask    services.Service[updatetask.Input, updatetask.Result]
	DeleteTask    services.Service[deletetask.Input, deletetask.Result]
	GetTask       services.Service[gettask.Input, gettask.Result]
	ListUserTasks services.Service[listusertasks.Input, listusertasks.Result]

	CreateMeeting    services.Service[createmeeting.Input, createmeeting.Result]
	ListUserMeetings services.Service[listusermeetings.Input, listusermeetings.Result]
	DeleteMeeting    services.Service[deletemeeting.Input, deletemeeting.Result]

	RestoreReminders services.Service[restorereminders.Input, restorereminders.Result]
	SendReminder     services.Service[sendreminder.Input, sendreminder.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		signup.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(),
	)

	s.CreateTask = auth.WithAuthentication(
		deps.SessionRepository,
		createtask.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			deps.Now,
		),
	)
	s.UpdateTask = auth.WithAuthentication(
		deps.SessionRepository,
		updatetask.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			deps.Now,
		),
	)
	s.DeleteTask = auth.WithAuthentication(
		deps.SessionRepository,
		deletetask.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
		),
	)
	s.GetTask = auth.WithAuthentication(
		deps.SessionRepository,
		gettask.New(
			deps.Logger,
			deps.TaskRepository,
		),
	)
	s.ListUserTasks = auth.WithAuthentication(
		deps.SessionRepository,
		listusertasks.New(
			deps.Logger,
			deps.TaskRepository,
		),
	)

	s.CreateMeeting = auth.WithAuthentication(
		deps.SessionRepository,
		createmeeting.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.InvitationSender,
			deps.Now,
		),
	)
	s.ListUserMeetings = auth.WithAuthentication(
		deps.SessionRepository,
		listusermeetings.New(
			deps.Logger,
			deps.MeetingRepository,
		),
	)
	s.DeleteMeeting = auth.WithAuthentication(
		deps.SessionRepository,
		deletemeeting.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)

	s.RestoreReminders = restorereminders.New(
		deps.Logger,
		deps.TaskRepository,
		deps.ReminderScheduler,
		deps.Now,
	)
	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.TaskRepository,
		deps.ReminderSender,
	)

	return s
}
