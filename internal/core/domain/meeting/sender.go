package meeting

import (
	"context"
	"sync"
	c "taskflow/internal/core/domain/common"
)

// InvitationSender notifies a single attendee about a newly created
// meeting. Delivery is best effort.
type InvitationSender interface {
	SendInvitation(ctx context.Context, m Meeting, attendee c.Email) error
}

type FakeInvitationSender struct {
	Sent      []c.Email
	SendError error
	lock      sync.Mutex
}

func NewFakeInvitationSender() *FakeInvitationSender {
	return &FakeInvitationSender{}
}

func (s *FakeInvitationSender) SendInvitation(ctx context.Context, m Meeting, attendee c.Email) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, attendee)
	return nil
}
