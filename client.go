package kadmin

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// stoppableTimer is the minimal surface of *time.Timer the driver needs;
// tests substitute a fake to run the state machine without real wall
// time.
type stoppableTimer interface {
	Stop() bool
}

// ThrottleEvent is forwarded to the client's main event channel whenever
// a response carries a non-zero throttle hint (spec §4.4 rule 1).
type ThrottleEvent struct {
	Millis time.Duration
}

// Client issues admin requests and drives each to completion against a
// cluster member, delivering typed results to application-owned reply
// channels. It owns the single driver goroutine described in spec §5.
//
// A Client must be constructed with NewClient and closed with Close.
type Client struct {
	cfg cfg

	logger  Logger
	metrics *metricsRecorder
	waiter  brokerWaiter

	events   chan ThrottleEvent
	submitCh chan *RequestItem
	repostCh chan *RequestItem
	closeCh  chan struct{}

	liveMu sync.Mutex
	live   map[*RequestItem]struct{} // every item since submit(), until destroy()

	closeOnce   sync.Once
	terminating atomic.Bool
	wg          sync.WaitGroup

	nowFn       func() time.Time
	afterFuncFn func(time.Duration, func()) stoppableTimer
}

// NewClient constructs a Client and starts its driver goroutine. waiter
// is the broker/controller lookup collaborator (spec §1's "metadata
// discovery, broker connection management, and controller election
// tracking" external dependency); production callers typically pass a
// *ClusterView (see cluster.go).
func NewClient(waiter brokerWaiter, opts ...Opt) *Client {
	cfg := defaultCfg()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	cl := &Client{
		cfg:      cfg,
		logger:   cfg.logger,
		metrics:  newMetricsRecorder(cfg.metricsRegisterer),
		waiter:   waiter,
		events:   make(chan ThrottleEvent, 16),
		submitCh: make(chan *RequestItem, 64),
		repostCh: make(chan *RequestItem, 64),
		closeCh:  make(chan struct{}),
		live:     make(map[*RequestItem]struct{}),
		nowFn:    time.Now,
	}
	cl.afterFuncFn = func(d time.Duration, f func()) stoppableTimer {
		return time.AfterFunc(d, f)
	}

	cl.wg.Add(1)
	go cl.run()
	return cl
}

func (d *Client) now() time.Time { return d.nowFn() }

func (d *Client) afterFunc(dur time.Duration, f func()) stoppableTimer {
	return d.afterFuncFn(dur, f)
}

func (d *Client) isTerminating() bool { return d.terminating.Load() }

// EventChannel returns the channel throttle hints are forwarded to (spec
// §4.4 rule 1, §7 "client's main event channel").
func (d *Client) EventChannel() <-chan ThrottleEvent { return d.events }

// SeedBrokers returns the addresses passed to WithSeedBrokers, or nil if
// none were given. The driver never dials these itself; this is purely a
// hand-back for the external connection manager that owns the
// brokerWaiter passed to NewClient.
func (d *Client) SeedBrokers() []string { return d.cfg.seedBrokers }

// run is the driver loop: a single goroutine selecting over submissions,
// trigger re-posts, and termination, with equal priority between the
// first two (spec §5 "the driver processes queue items in FIFO order").
func (d *Client) run() {
	defer d.wg.Done()
	for {
		select {
		case item := <-d.submitCh:
			d.step(item)
		case item := <-d.repostCh:
			d.step(item)
		case <-d.closeCh:
			d.drainOnClose()
			return
		}
	}
}

// drainOnClose implements cancellation mechanism 2 from spec §5: mark
// terminating, then destroy silently every item still in flight.
//
// Draining submitCh/repostCh alone is not enough: an item parked in
// WAIT_BROKER/WAIT_CONTROLLER is registered only inside the brokerWaiter's
// own waiter list, and an item with a live deadline timer is registered
// only with the Go runtime timer — neither surfaces on either channel
// until something fires its trigger. Since run() has already returned,
// nothing will ever read that eventual repost. So drainOnClose also walks
// every item this Client has ever submitted and not yet destroyed (the
// live registry) and fires its trigger with errDestroy directly, forcing
// it onto repostCh where the loop below steps it through destroySilently.
func (d *Client) drainOnClose() {
	d.terminating.Store(true)
	for {
		if d.drainQueuesOnce() {
			continue
		}
		if len(d.liveSnapshot()) == 0 {
			return
		}
		// Every item still live either gets claimed by our Fire call
		// below (and will appear on repostCh next iteration) or was
		// already claimed by some other source racing Close (a broker
		// coming up, a controller election, a response arriving) and is
		// already en route to repostCh on its own. Either way it will
		// show up in the drain above shortly; yield until it does.
		if !d.fireLiveItems() {
			runtime.Gosched()
		}
	}
}

// drainQueuesOnce performs one non-blocking receive from submitCh or
// repostCh, stepping whatever it finds. Returns false once both are
// empty.
func (d *Client) drainQueuesOnce() bool {
	select {
	case item := <-d.submitCh:
		d.step(item)
		return true
	case item := <-d.repostCh:
		d.step(item)
		return true
	default:
		return false
	}
}

// fireLiveItems fires errDestroy into every currently-live item's trigger,
// reporting whether it won at least one arming. Losing an arming means
// some other source already claimed that item and is already posting it
// to repostCh.
func (d *Client) fireLiveItems() bool {
	fired := false
	for _, item := range d.liveSnapshot() {
		if item.trigger.Fire(errDestroy) {
			fired = true
		}
	}
	return fired
}

// trackLive registers item as in flight until destroy() is called on it.
func (d *Client) trackLive(item *RequestItem) {
	d.liveMu.Lock()
	d.live[item] = struct{}{}
	d.liveMu.Unlock()
}

// untrackLive removes item from the live registry. Safe to call more than
// once for the same item.
func (d *Client) untrackLive(item *RequestItem) {
	d.liveMu.Lock()
	delete(d.live, item)
	d.liveMu.Unlock()
}

func (d *Client) liveSnapshot() []*RequestItem {
	d.liveMu.Lock()
	defer d.liveMu.Unlock()
	items := make([]*RequestItem, 0, len(d.live))
	for item := range d.live {
		items = append(items, item)
	}
	return items
}

// Close terminates the driver. In-flight requests are destroyed silently
// (no result is delivered); requests already posted to their reply
// channel before Close was called are unaffected. Close does not drain
// reply channels (SPEC_FULL.md §11 item 1).
func (d *Client) Close() {
	d.closeOnce.Do(func() {
		d.terminating.Store(true)
		close(d.closeCh)
	})
	d.wg.Wait()
}

// submit builds a RequestItem from caller-supplied args/options and
// enqueues it on the driver's work channel. It is the shared tail of all
// five public submission functions.
func (d *Client) submit(kind RequestKind, args []element, opts *AdminOptions, replyCh chan *ResultEvent, cdc codec) {
	if opts == nil {
		opts = NewAdminOptions(kind, d.cfg.defaultRequestTimeout)
	}
	item := &RequestItem{
		Kind:     kind,
		state:    StateInit,
		Args:     args,
		Options:  opts.snapshot(),
		BrokerID: opts.Broker(),
		replyCh:  replyCh,
		codec:    cdc,
		deadline: d.now().Add(opts.RequestTimeout()),
	}
	item.trigger = NewOneShotTrigger(item, d.repostCh)
	d.metrics.incInFlight()
	d.trackLive(item)

	if d.isTerminating() {
		// Submissions after Close are destroyed silently rather than
		// risk a send on a closed submitCh.
		d.destroySilently(item)
		return
	}
	select {
	case d.submitCh <- item:
	case <-d.closeCh:
		d.destroySilently(item)
	}
}
