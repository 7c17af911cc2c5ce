package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/phalabot/internal/common/clock/mocks"
	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WaitersTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	waiters   *Waiters
	ctx       context.Context

	testChannelID string
	testUserID    string
	otherUserID   string
}

func (s *WaitersTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.waiters = NewWaiters(s.mockClock)
	s.ctx = context.Background()

	s.testChannelID = "bot-commands"
	s.testUserID = "user-1"
	s.otherUserID = "user-2"
}

func (s *WaitersTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWaitersTestSuite(t *testing.T) {
	suite.Run(t, new(WaitersTestSuite))
}

type awaitResult struct {
	msg *models.Message
	err error
}

// awaitAsync starts a waiter and blocks until it is registered
func (s *WaitersTestSuite) awaitAsync(ctx context.Context, match Predicate) <-chan awaitResult {
	before := s.waiters.Pending()
	done := make(chan awaitResult, 1)
	go func() {
		msg, err := s.waiters.Await(ctx, match, time.Minute)
		done <- awaitResult{msg: msg, err: err}
	}()
	s.Require().Eventually(func() bool {
		return s.waiters.Pending() == before+1
	}, time.Second, time.Millisecond)
	return done
}

func (s *WaitersTestSuite) neverFires() {
	var never <-chan time.Time = make(chan time.Time)
	s.mockClock.EXPECT().After(time.Minute).Return(never).AnyTimes()
}

func (s *WaitersTestSuite) TestDeliver_MatchingMessage() {
	s.neverFires()
	done := s.awaitAsync(s.ctx, FromAuthorInChannel(s.testUserID, s.testChannelID))

	// Same author, wrong channel
	woken := s.waiters.Deliver(&models.Message{AuthorID: s.testUserID, ChannelID: "general", Content: "abc12"})
	s.Equal(0, woken)

	// Right channel, wrong author
	woken = s.waiters.Deliver(&models.Message{AuthorID: s.otherUserID, ChannelID: s.testChannelID, Content: "abc12"})
	s.Equal(0, woken)

	woken = s.waiters.Deliver(&models.Message{AuthorID: s.testUserID, ChannelID: s.testChannelID, Content: "abc12"})
	s.Equal(1, woken)

	result := <-done
	s.Require().NoError(result.err)
	s.Equal("abc12", result.msg.Content)
	s.Equal(0, s.waiters.Pending())
}

func (s *WaitersTestSuite) TestAwait_Timeout() {
	fire := make(chan time.Time, 1)
	var after <-chan time.Time = fire
	s.mockClock.EXPECT().After(time.Minute).Return(after)

	done := s.awaitAsync(s.ctx, FromAuthorInChannel(s.testUserID, s.testChannelID))
	fire <- time.Now()

	result := <-done
	s.ErrorIs(result.err, ErrWaitTimeout)
	s.Nil(result.msg)
	s.Equal(0, s.waiters.Pending())

	// A late response has nobody to wake
	s.Equal(0, s.waiters.Deliver(&models.Message{AuthorID: s.testUserID, ChannelID: s.testChannelID}))
}

func (s *WaitersTestSuite) TestAwait_ContextCancelled() {
	s.neverFires()
	ctx, cancel := context.WithCancel(s.ctx)

	done := s.awaitAsync(ctx, FromAuthorInChannel(s.testUserID, s.testChannelID))
	cancel()

	result := <-done
	s.ErrorIs(result.err, context.Canceled)
	s.Equal(0, s.waiters.Pending())
}

func (s *WaitersTestSuite) TestDeliver_IndependentUsers() {
	s.neverFires()
	first := s.awaitAsync(s.ctx, FromAuthorInChannel(s.testUserID, s.testChannelID))
	second := s.awaitAsync(s.ctx, FromAuthorInChannel(s.otherUserID, s.testChannelID))

	s.Equal(1, s.waiters.Deliver(&models.Message{AuthorID: s.otherUserID, ChannelID: s.testChannelID, Content: "second"}))
	s.Equal(1, s.waiters.Deliver(&models.Message{AuthorID: s.testUserID, ChannelID: s.testChannelID, Content: "first"}))

	s.Equal("first", (<-first).msg.Content)
	s.Equal("second", (<-second).msg.Content)
}

func (s *WaitersTestSuite) TestDeliver_WakesEveryMatchingWaiter() {
	s.neverFires()
	match := FromAuthorInChannel(s.testUserID, s.testChannelID)
	first := s.awaitAsync(s.ctx, match)
	second := s.awaitAsync(s.ctx, match)

	s.Equal(2, s.waiters.Deliver(&models.Message{AuthorID: s.testUserID, ChannelID: s.testChannelID, Content: "same"}))

	s.Equal("same", (<-first).msg.Content)
	s.Equal("same", (<-second).msg.Content)
}

func (s *WaitersTestSuite) TestAwait_InvalidInput() {
	_, err := s.waiters.Await(s.ctx, nil, time.Minute)
	s.ErrorIs(err, ErrNilPredicate)

	_, err = s.waiters.Await(s.ctx, FromAuthorInChannel(s.testUserID, s.testChannelID), 0)
	s.ErrorIs(err, ErrInvalidTimeout)
}

func (s *WaitersTestSuite) TestDeliver_NilMessage() {
	s.Equal(0, s.waiters.Deliver(nil))
}
