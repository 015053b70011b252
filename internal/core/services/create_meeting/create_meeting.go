package createmeeting

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
	"time"
)

type Input struct {
	User        user.User
	Title       string
	Description string
	Date        time.Time
	StartAt     time.Time
	EndAt       time.Time
	MeetingType meeting.Type
	Location    string
	Attendees   []c.Email
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Meeting meeting.Meeting
}

type service struct {
	log              logging.Logger
	unitOfWork       uow.UnitOfWork
	invitationSender meeting.InvitationSender
	now              func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	invitationSender meeting.InvitationSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if invitationSender == nil {
		panic(e.NewNilArgumentError("invitationSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		unitOfWork:       unitOfWork,
		invitationSender: invitationSender,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	candidate, err := task.NewInterval(input.StartAt, input.EndAt)
	if err != nil {
		return result, err
	}
	if input.MeetingType != meeting.TypeOnline && input.Location == "" {
		return result, meeting.ErrLocationRequired
	}
	if err := meeting.ValidateAttendees(input.Attendees); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	// The advisory lock is shared with tasks, so meeting creation also
	// serializes against concurrent task creation for the same user.
	if err := uow.Tasks().LockUser(ctx, input.User.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	existing, err := uow.Meetings().Read(ctx, meeting.ReadOptions{
		OrganizerEquals: c.NewOptional(input.User.ID, true),
		OverlapsWith:    c.NewOptional(candidate, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	if conflicting, found := meeting.FindConflict(existing, candidate, meeting.ID(0)); found {
		return result, &meeting.ConflictError{
			ConflictingID:    conflicting.ID,
			ConflictingTitle: conflicting.Title,
		}
	}

	createdMeeting, err := uow.Meetings().Create(ctx, meeting.CreateInput{
		Organizer:   input.User.ID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		MeetingType: input.MeetingType,
		Location:    input.Location,
		Attendees:   input.Attendees,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	// Invitations are best effort: the meeting is already saved, a
	// failed delivery only gets logged.
	for _, attendee := range createdMeeting.Attendees {
		if err := s.invitationSender.SendInvitation(ctx, createdMeeting, attendee); err != nil {
			logging.Error(
				ctx, s.log, err,
				logging.Entry("meetingID", createdMeeting.ID),
				logging.Entry("attendee", attendee),
			)
		}
	}

	s.log.Info(ctx, "Meeting successfully created.", logging.Entry("meetingID", createdMeeting.ID))
	return Result{Meeting: createdMeeting}, nil
}
