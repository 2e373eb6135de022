package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/testutil"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New(testutil.NopLogger())
	defer b.Close()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(model.RoundStartedEvent())

	for _, sub := range []*Subscription{sub1, sub2} {
		event, err := sub.Recv()
		require.NoError(t, err)
		assert.Equal(t, model.EventRoundStarted, event.Type)
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	b := New(testutil.NopLogger())
	defer b.Close()

	slow := b.Subscribe()
	fast := b.Subscribe()

	// overflow the slow subscriber's buffer without draining it
	for i := 0; i < subscriberBufferSize+10; i++ {
		b.Publish(model.BlindPostedEvent(i, 10))
	}

	// the fast subscriber also lagged (nothing drained), so both see the
	// lag notice; the point is Publish returned at all
	_, err := slow.Recv()
	assert.ErrorIs(t, err, ErrSlowSubscriber)
	_, err = fast.Recv()
	assert.ErrorIs(t, err, ErrSlowSubscriber)

	// after the notice, buffered events are still delivered in order
	event, err := slow.Recv()
	require.NoError(t, err)
	assert.Equal(t, model.EventBlindPosted, event.Type)
}

func TestLaggedCountsDroppedEvents(t *testing.T) {
	b := New(testutil.NopLogger())
	defer b.Close()

	sub := b.Subscribe()
	for i := 0; i < subscriberBufferSize+7; i++ {
		b.Publish(model.RoundStartedEvent())
	}

	assert.Equal(t, uint64(7), sub.Lagged())
	// counter resets after being read
	assert.Equal(t, uint64(0), sub.Lagged())
}

func TestRecvAfterCloseReturnsErrClosed(t *testing.T) {
	b := New(testutil.NopLogger())
	sub := b.Subscribe()

	b.Publish(model.RoundStartedEvent())
	b.Close()

	// buffered events drain before the closed notice
	event, err := sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, model.EventRoundStarted, event.Type)

	_, err = sub.Recv()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSubscribeAfterCloseIsImmediatelyClosed(t *testing.T) {
	b := New(testutil.NopLogger())
	b.Close()

	sub := b.Subscribe()
	_, err := sub.Recv()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(testutil.NopLogger())
	defer b.Close()

	sub := b.Subscribe()
	sub.Unsubscribe()
	require.Equal(t, 0, b.SubscriberCount())

	// publishing after unsubscribe must not panic or block
	b.Publish(model.RoundStartedEvent())

	_, err := sub.Recv()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublishAfterCloseIsNoOp(t *testing.T) {
	b := New(testutil.NopLogger())
	b.Close()
	b.Publish(model.RoundStartedEvent())
}
