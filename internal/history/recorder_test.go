package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/dependencies/mocks"
	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/storage/memory"
	"github.com/cardtable/holdem-go/internal/testutil"
)

const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 5 * time.Millisecond
)

type RecorderSuite struct {
	suite.Suite
	broadcaster *broadcast.Broadcaster
	storage     *memory.Storage
	clock       *mocks.MockClock
	recorder    *Recorder
	ctx         context.Context
	cancel      context.CancelFunc
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.broadcaster = broadcast.New(testutil.NopLogger())
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	s.recorder = NewRecorder(s.broadcaster, s.storage, s.clock, testutil.NopLogger())

	s.ctx, s.cancel = context.WithCancel(context.Background())
	go s.recorder.Run(s.ctx)

	// wait until the recorder's subscription is registered so published
	// events cannot race past it
	s.Eventually(func() bool {
		return s.broadcaster.SubscriberCount() == 1
	}, eventuallyTimeout, eventuallyTick)
}

func (s *RecorderSuite) TearDownTest() {
	s.cancel()
}

func (s *RecorderSuite) journal() []*model.EventRecord {
	records, err := s.storage.ListEvents(s.ctx)
	s.Require().NoError(err)
	return records
}

func (s *RecorderSuite) TestJournalsPublishedEvents() {
	s.broadcaster.Publish(model.BlindPostedEvent(0, 10))
	s.broadcaster.Publish(model.BlindPostedEvent(1, 20))
	s.broadcaster.Publish(model.RoundStartedEvent())

	s.Eventually(func() bool {
		return len(s.journal()) == 3
	}, eventuallyTimeout, eventuallyTick)

	records := s.journal()
	s.Equal(model.EventBlindPosted, records[0].Type)
	s.Equal(model.EventBlindPosted, records[1].Type)
	s.Equal(model.EventRoundStarted, records[2].Type)
	s.Equal(int64(1), records[0].Sequence)
	s.Equal(int64(3), records[2].Sequence)

	var blind model.BlindPostedPayload
	s.Require().NoError(json.Unmarshal(records[1].Data, &blind))
	s.Equal(1, blind.Seat)
	s.Equal(uint64(20), blind.Amount)
}

func (s *RecorderSuite) TestStampsRecordsWithClockTime() {
	s.broadcaster.Publish(model.RoundStartedEvent())

	s.Eventually(func() bool {
		return len(s.journal()) == 1
	}, eventuallyTimeout, eventuallyTick)

	s.Equal(s.clock.CurrentTime, s.journal()[0].RecordedAt)
}

func (s *RecorderSuite) TestGameStateEventUpdatesSnapshot() {
	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	state := &model.TableState{Phase: model.PhasePreflop, Pot: 30}
	s.broadcaster.Publish(model.GameStateEvent(state))

	s.Eventually(func() bool {
		snapshot, err := s.storage.GetSnapshot(s.ctx)
		return err == nil && snapshot.Pot == 30
	}, eventuallyTimeout, eventuallyTick)
}

func (s *RecorderSuite) TestNonStateEventsLeaveSnapshotAlone() {
	s.broadcaster.Publish(model.BlindPostedEvent(0, 10))

	s.Eventually(func() bool {
		return len(s.journal()) == 1
	}, eventuallyTimeout, eventuallyTick)

	_, err := s.storage.GetSnapshot(s.ctx)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *RecorderSuite) TestStopsWhenBroadcasterCloses() {
	s.broadcaster.Close()

	// a second recorder run against the closed broadcaster returns at once
	done := make(chan struct{})
	go func() {
		s.recorder.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(eventuallyTimeout):
		s.Fail("recorder did not stop after broadcaster close")
	}
}
