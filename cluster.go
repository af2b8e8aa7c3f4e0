package kadmin

import (
	"sync"
	"sync/atomic"
)

// unknownControllerID mirrors pkg/kgo's sentinel for "controller not yet
// known" (client.go's controllerID field).
const unknownControllerID = -1

// brokerState is a cluster member as ClusterView tracks it: an address to
// dial plus whether a live connection is currently up.
type brokerState struct {
	addr   string
	up     bool
	sender RequestSender

	waiters []*OneShotTrigger // fired once, on the next state change
}

// ClusterView is the production brokerWaiter: a broker map and controller
// id guarded by a single mutex, grounded on pkg/kgo's Client.brokersMu /
// Client.brokers / Client.controllerID triple (client.go). Unlike kgo,
// which owns metadata refresh and dialing itself, ClusterView is fed
// broker/controller state externally via SetBroker/SetController/SetDown
// — this module's scope is the admin request driver, not connection
// management (spec §1 Non-goals).
type ClusterView struct {
	mu           sync.RWMutex
	brokers      map[int32]*brokerState
	controllerID int32 // atomic

	controllerWaiters []*OneShotTrigger
}

// NewClusterView returns an empty view with no known controller. Callers
// populate it via SetBroker/SetController before requests can progress
// past WAIT_BROKER/WAIT_CONTROLLER.
func NewClusterView() *ClusterView {
	return &ClusterView{
		brokers:      make(map[int32]*brokerState),
		controllerID: unknownControllerID,
	}
}

// SetBroker registers or updates a cluster member's address and sender,
// marking it up, and fires any triggers that were waiting on this broker
// id (spec §4.3's "broker state change" source).
func (v *ClusterView) SetBroker(id int32, addr string, sender RequestSender) {
	v.mu.Lock()
	b, ok := v.brokers[id]
	if !ok {
		b = &brokerState{}
		v.brokers[id] = b
	}
	b.addr = addr
	b.sender = sender
	b.up = true
	waiters := b.waiters
	b.waiters = nil
	v.mu.Unlock()

	for _, t := range waiters {
		t.Fire(nil)
	}
}

// SetDown marks a broker as unreachable. Requests already WAIT_BROKER on
// it for that exact broker id are not woken; they remain queued until
// SetBroker marks it up again or their deadline elapses. If id is the
// current controller, the cached controller id is invalidated and any
// controller waiters are re-woken, so controller-routed requests
// re-resolve against a future election instead of piling onto the now-
// dead broker until their deadline fires (spec §4.3's "controller
// election" source also covers controller loss).
func (v *ClusterView) SetDown(id int32) {
	v.mu.Lock()
	if b, ok := v.brokers[id]; ok {
		b.up = false
	}
	var waiters []*OneShotTrigger
	if atomic.LoadInt32(&v.controllerID) == id {
		atomic.StoreInt32(&v.controllerID, unknownControllerID)
		waiters = v.controllerWaiters
		v.controllerWaiters = nil
	}
	v.mu.Unlock()

	for _, t := range waiters {
		t.Fire(nil)
	}
}

// SetController records the current controller id and fires any triggers
// registered via getController while the controller was unknown (spec
// §4.3's "controller election" source). id must also be present via
// SetBroker for its connection to resolve on the next getController call.
func (v *ClusterView) SetController(id int32) {
	atomic.StoreInt32(&v.controllerID, id)

	v.mu.Lock()
	waiters := v.controllerWaiters
	v.controllerWaiters = nil
	v.mu.Unlock()

	for _, t := range waiters {
		t.Fire(nil)
	}
}

// getBroker implements brokerWaiter.getBroker.
func (v *ClusterView) getBroker(id int32, trigger *OneShotTrigger) (*BrokerHandle, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	b, ok := v.brokers[id]
	if !ok {
		// Not yet registered: park the waiter until SetBroker brings it up.
		b = &brokerState{}
		v.brokers[id] = b
	}
	if b.up {
		return newBrokerHandle(id, b.addr, b.sender), nil
	}
	trigger.AddSource("broker wait")
	b.waiters = append(b.waiters, trigger)
	return nil, nil
}

// getController implements brokerWaiter.getController.
func (v *ClusterView) getController(trigger *OneShotTrigger) (*BrokerHandle, error) {
	id := atomic.LoadInt32(&v.controllerID)
	if id == unknownControllerID {
		v.mu.Lock()
		// re-check under lock: SetController may have raced us between
		// the atomic load above and taking the lock here.
		if id = atomic.LoadInt32(&v.controllerID); id == unknownControllerID {
			trigger.AddSource("controller wait")
			v.controllerWaiters = append(v.controllerWaiters, trigger)
			v.mu.Unlock()
			return nil, nil
		}
		v.mu.Unlock()
	}
	return v.getBroker(id, trigger)
}
