package listusermeetings

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Meetings []meeting.Meeting
}

type service struct {
	log               logging.Logger
	meetingRepository meeting.MeetingRepository
}

func New(
	log logging.Logger,
	meetingRepository meeting.MeetingRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if meetingRepository == nil {
		panic(e.NewNilArgumentError("meetingRepository"))
	}
	return &service{log: log, meetingRepository: meetingRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// Invited users see meetings they did not organize themselves.
	meetings, err := s.meetingRepository.Read(ctx, meeting.ReadOptions{
		OrganizerEquals:  c.NewOptional(input.User.ID, true),
		AttendeeContains: c.NewOptional(input.User.Email, true),
		OrderByDateAsc:   true,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	return Result{Meetings: meetings}, nil
}
