package kadmin

import (
	"sync/atomic"

	"github.com/twmb/franz-go/pkg/kmsg"
)

// BrokerHandle is a reference-counted handle to a live connection to a
// specific cluster member. The driver holds exactly one reference from
// lookup until it releases the reference in CONSTRUCT_REQUEST (spec §5
// "Broker handle" discipline).
type BrokerHandle struct {
	ID   int32
	Addr string

	refs int32 // atomic

	sender RequestSender
}

func newBrokerHandle(id int32, addr string, sender RequestSender) *BrokerHandle {
	return &BrokerHandle{ID: id, Addr: addr, refs: 1, sender: sender}
}

func (b *BrokerHandle) retain() { atomic.AddInt32(&b.refs, 1) }

func (b *BrokerHandle) release() { atomic.AddInt32(&b.refs, -1) }

// RequestSender is the out-of-scope wire codec / broker I/O collaborator
// from spec §1: "a function that, given a broker handle, enqueues a
// serialized request and later invokes a handler with a parsed reply
// buffer." encode/decode call sites in this module never talk to a
// socket directly; they go through this interface. Connection managers
// plug in by implementing this and passing it to ClusterView.SetBroker.
type RequestSender interface {
	// Send enqueues req against the broker this handle targets. handler
	// is invoked exactly once, on the I/O thread, either with a parsed
	// response or with an error if the send or read failed. Send itself
	// never blocks on I/O.
	Send(req kmsg.Request, handler func(kmsg.Response, error)) error
}

// brokerWaiter is the out-of-scope metadata/connection-management
// collaborator from spec §1: "async lookups that register a one-shot
// waiter and fire it on state change."
type brokerWaiter interface {
	// getBroker returns a live, UP broker handle for id synchronously if
	// one is already available. Otherwise it registers trigger as a
	// waiter (via AddSource("broker wait")) to be fired the next time
	// this broker's state changes, and returns (nil, nil).
	getBroker(id int32, trigger *OneShotTrigger) (*BrokerHandle, error)

	// getController behaves like getBroker but resolves the current
	// controller. While the controller is unknown it registers trigger as
	// a waiter (via AddSource("controller wait")) for the next
	// controller-election change; once the controller id is known it
	// behaves as getBroker for that id (AddSource("broker wait")).
	getController(trigger *OneShotTrigger) (*BrokerHandle, error)
}
