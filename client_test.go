package kadmin

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// TestClient_CloseDestroysInFlightSilently exercises an item parked in
// WAIT_CONTROLLER — registered only inside the ClusterView's own
// controllerWaiters slice, never sitting on submitCh/repostCh — to confirm
// Close actually reaches it rather than leaving it to rot (and its
// deadline timer goroutine blocked forever trying to repost into a
// channel nobody reads anymore).
func TestClient_CloseDestroysInFlightSilently(t *testing.T) {
	view := NewClusterView() // no controller ever elected
	reg := prometheus.NewRegistry()
	cl := NewClient(view, WithMetrics(reg))

	replyCh := make(chan *ResultEvent, 1)
	cl.DeleteTopics([]DeleteTopic{{Topic: "a"}}, NewAdminOptions(KindDeleteTopics, time.Hour), replyCh)

	require.Eventually(t, func() bool {
		view.mu.Lock()
		defer view.mu.Unlock()
		return len(view.controllerWaiters) == 1
	}, time.Second, time.Millisecond, "item should be parked waiting for the controller before Close")

	cl.Close()

	select {
	case <-replyCh:
		t.Fatal("an item destroyed by Close must not deliver a result")
	case <-time.After(50 * time.Millisecond):
	}
	require.Equal(t, float64(0), testutil.ToFloat64(cl.metrics.inFlight),
		"Close must decrement in-flight for items it forces through destroy")

	// A stale trigger reference may still sit in controllerWaiters until
	// the next SetController call; firing it again must be a harmless
	// no-op rather than resurrecting the already-destroyed item.
	view.SetController(9)
	select {
	case <-replyCh:
		t.Fatal("destroyed item must not be resurrected by a later controller update")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestClient_ThrottleForwarded(t *testing.T) {
	cl, sender, _ := newTestClient(t)

	replyCh := make(chan *ResultEvent, 1)
	cl.CreateTopics([]NewTopic{{Topic: "a", PartitionCount: 1, ReplicationFactor: 1}}, nil, replyCh)

	require.Eventually(t, func() bool { return sender.sentCount() == 1 }, time.Second, time.Millisecond)
	sender.respondLatest(&kmsg.CreateTopicsResponse{
		ThrottleMillis: 250,
		Topics:         []kmsg.CreateTopicsResponseTopic{{Topic: "a", ErrorCode: 0}},
	}, nil)
	<-replyCh

	select {
	case evt := <-cl.EventChannel():
		require.Equal(t, 250*time.Millisecond, evt.Millis)
	case <-time.After(time.Second):
		t.Fatal("expected a throttle event")
	}
}

func TestClient_SubmitAfterCloseIsSilentlyDropped(t *testing.T) {
	cl, _, _ := newTestClient(t)
	cl.Close()

	replyCh := make(chan *ResultEvent, 1)
	cl.CreateTopics([]NewTopic{{Topic: "a", PartitionCount: 1, ReplicationFactor: 1}}, nil, replyCh)

	select {
	case <-replyCh:
		t.Fatal("submission after Close must not deliver a result")
	case <-time.After(50 * time.Millisecond):
	}
}
