package deletemeeting

import (
	"context"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/meeting"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
)

type Input struct {
	User      user.User
	MeetingID meeting.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	m, err := uow.Meetings().GetByID(ctx, input.MeetingID)
	if err != nil {
		if err != meeting.ErrMeetingDoesNotExist {
			logging.Error(ctx, s.log, err, logging.Entry("meetingID", input.MeetingID))
		}
		return result, err
	}
	if m.Organizer != input.User.ID {
		return result, meeting.ErrMeetingPermission
	}

	if err := uow.Meetings().Delete(ctx, input.MeetingID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("meetingID", input.MeetingID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("meetingID", input.MeetingID))
		return result, err
	}

	s.log.Info(ctx, "Meeting successfully deleted.", logging.Entry("meetingID", input.MeetingID))
	return result, nil
}
