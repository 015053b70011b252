package deletemeeting

import (
	"context"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/meeting"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID    = user.ID(42)
	MEETING_ID = meeting.ID(7)
)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	unitOfWork *uow.FakeUnitOfWork
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.unitOfWork.Meetings().Meetings = []meeting.Meeting{
		{ID: MEETING_ID, Organizer: USER_ID, Title: "Sprint review"},
	}
	suite.service = New(suite.logger, suite.unitOfWork)
}

func TestDeleteMeetingService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	_, err := s.service.Run(context.Background(), Input{
		User:      user.User{ID: USER_ID},
		MeetingID: MEETING_ID,
	})

	s.Nil(err)
	s.Empty(s.unitOfWork.Meetings().Meetings)
	s.True(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestMeetingDoesNotExist() {
	_, err := s.service.Run(context.Background(), Input{
		User:      user.User{ID: USER_ID},
		MeetingID: meeting.ID(999),
	})

	s.ErrorIs(err, meeting.ErrMeetingDoesNotExist)
}

func (s *testSuite) TestAnotherUsersMeeting() {
	_, err := s.service.Run(context.Background(), Input{
		User:      user.User{ID: user.ID(111)},
		MeetingID: MEETING_ID,
	})

	s.ErrorIs(err, meeting.ErrMeetingPermission)
	s.Len(s.unitOfWork.Meetings().Meetings, 1)
}
