package remindersender

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
)

// EmailSender delivers a reminder to the task owner's mailbox.
type EmailSender interface {
	SendTaskReminder(ctx context.Context, to c.Email, t task.Task) error
}

// Sender fans a due reminder out to email and the owner's live SSE
// stream. Email is the primary channel, the SSE push is best effort.
type Sender struct {
	log            logging.Logger
	userRepository user.UserRepository
	emailSender    EmailSender
	internalSender *InternalSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	emailSender EmailSender,
	internalSender *InternalSender,
) *Sender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	if internalSender == nil {
		panic(e.NewNilArgumentError("internalSender"))
	}
	return &Sender{
		log:            log,
		userRepository: userRepository,
		emailSender:    emailSender,
		internalSender: internalSender,
	}
}

func (s *Sender) SendReminder(ctx context.Context, t task.Task) error {
	owner, err := s.userRepository.GetByID(ctx, t.CreatedBy)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID), logging.Entry("userID", t.CreatedBy))
		return err
	}

	if err := s.internalSender.SendReminder(ctx, t); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID))
	}

	if err := s.emailSender.SendTaskReminder(ctx, owner.Email, t); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID))
		return err
	}

	s.log.Info(ctx, "Reminder has been sent.", logging.Entry("taskID", t.ID))
	return nil
}
