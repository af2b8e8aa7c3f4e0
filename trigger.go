package kadmin

import "sync"

// OneShotTrigger is a single-consumer wake-up primitive with multiple
// independent arming sources. At most one source "wins" per arming: the
// first call to fire after the trigger was (re)armed posts the attached
// item to the target channel and clears the item; every later fire call
// in that arming is a no-op.
//
// A trigger is reused across a request's lifetime: each time the driver
// enters a waiting state it re-arms the trigger via reenable and attaches
// whichever sources may independently complete that wait (a deadline
// timer, a broker-state waiter, a response handler).
type OneShotTrigger struct {
	mu      sync.Mutex
	fired   bool
	sources map[string]int
	item    *RequestItem
	target  chan<- *RequestItem
}

// NewOneShotTrigger returns a trigger armed for item, posting to target
// when fired.
func NewOneShotTrigger(item *RequestItem, target chan<- *RequestItem) *OneShotTrigger {
	return &OneShotTrigger{
		sources: make(map[string]int),
		item:    item,
		target:  target,
	}
}

// AddSource records that an asynchronous source intends to fire this
// trigger. name keys a per-name counter that HasSource reads and
// DelSource decrements; the trigger itself never logs it.
func (t *OneShotTrigger) AddSource(name string) {
	t.mu.Lock()
	t.sources[name]++
	t.mu.Unlock()
}

// DelSource removes a previously added source. It is a no-op (logged by
// callers that care) if name was never added in the current arming.
func (t *OneShotTrigger) DelSource(name string) {
	t.mu.Lock()
	if n := t.sources[name]; n > 1 {
		t.sources[name] = n - 1
	} else {
		delete(t.sources, name)
	}
	t.mu.Unlock()
}

// HasSource reports whether name is still outstanding.
func (t *OneShotTrigger) HasSource(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sources[name] > 0
}

// Fire attempts to complete the trigger's current arming. If this is the
// first Fire since the last Reenable, it stamps item.Err with err,
// clears the trigger's item pointer, and posts the item to the target
// channel, returning true ("won"). Every subsequent Fire before the next
// Reenable returns false ("lost") and does nothing.
//
// Fire never blocks longer than the time to send on target; target is
// expected to be a buffered or always-drained channel (the driver's
// repost channel).
func (t *OneShotTrigger) Fire(err error) bool {
	t.mu.Lock()
	if t.fired || t.item == nil {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	item := t.item
	t.item = nil
	target := t.target
	t.mu.Unlock()

	item.Err = err
	target <- item
	return true
}

// Disable atomically claims the trigger's item pointer back without
// posting it anywhere, for use by a winning-side handler (the response
// handler in WAIT_RESPONSE) that already has the item via another path
// and just needs to know whether it still owns it. Returns nil if
// another source already won this arming (e.g. the deadline timer).
func (t *OneShotTrigger) Disable() *RequestItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return nil
	}
	t.fired = true
	item := t.item
	t.item = nil
	return item
}

// Reenable re-attaches item and target and arms the trigger for another
// round of firing. Must only be called after the prior arming has
// resolved (via Fire or Disable).
func (t *OneShotTrigger) Reenable(item *RequestItem, target chan<- *RequestItem) {
	t.mu.Lock()
	t.fired = false
	t.item = item
	t.target = target
	t.mu.Unlock()
}

// sourceCount returns the number of distinct outstanding sources; used
// only by tests to assert accounting correctness.
func (t *OneShotTrigger) sourceCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sources)
}
