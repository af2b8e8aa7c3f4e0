package kadmin

import (
	"time"

	"github.com/twmb/franz-go/pkg/kmsg"
)

// driver is the single-threaded control loop described in spec §4.3. It
// is an alias for Client: the client IS the driver, in the same way
// pkg/kgo's Client owns its broker map and metadata loop directly rather
// than delegating to a separate object.
type driver = Client

// step advances item through the state graph until it either returns
// (yielding the driver to the next queue item, because item is now
// waiting on some asynchronous source) or the item is destroyed.
//
// This is the procedure spec §4.3 describes: preconditions are checked
// on every re-entry, then dispatch by state. A bare "continue" re-runs
// the loop from the top, modeling "advance to state X and fall through";
// a "return" models "return — re-entry is caused by ... firing the
// trigger".
func (d *driver) step(item *RequestItem) {
	for {
		if d.isTerminating() {
			d.destroySilently(item)
			return
		}
		if item.Err != nil {
			if isDestroy(item.Err) {
				d.destroySilently(item)
				return
			}
			d.publishFailure(item, item.Err)
			d.destroy(item)
			return
		}
		if item.deadlineExceeded(d.now()) {
			item.Err = newErr(KindTimedOut, "request deadline exceeded")
			d.publishFailure(item, item.Err)
			d.destroy(item)
			return
		}

		switch item.state {
		case StateInit:
			d.armDeadlineTimer(item)
			if item.BrokerID == -1 {
				item.state = StateWaitController
			} else {
				item.state = StateWaitBroker
			}
			continue

		case StateWaitBroker:
			item.trigger.Reenable(item, d.repostCh)
			broker, err := d.waiter.getBroker(item.BrokerID, item.trigger)
			if err != nil {
				item.Err = err
				continue
			}
			if broker == nil {
				return // waiting; trigger re-arms this item on broker state change
			}
			item.broker = broker
			item.state = StateConstructRequest
			continue

		case StateWaitController:
			item.trigger.Reenable(item, d.repostCh)
			broker, err := d.waiter.getController(item.trigger)
			if err != nil {
				item.Err = err
				continue
			}
			if broker == nil {
				return
			}
			item.broker = broker
			item.state = StateConstructRequest
			continue

		case StateConstructRequest:
			item.trigger.AddSource("send")
			err := item.codec.encode(d, item, item.broker)
			item.broker.release()
			item.broker = nil
			if err != nil {
				item.trigger.DelSource("send")
				item.Err = newErrf(KindEncodeFailed, "%v", err)
				continue
			}
			item.sentAt = d.now()
			item.state = StateWaitResponse
			return

		case StateWaitResponse:
			reply := item.replyBuf
			item.replyBuf = nil
			result, err := item.codec.decode(d, item, reply)
			if err != nil {
				item.Err = err
				continue
			}
			d.recordLatency(item)
			d.publishSuccess(item, result)
			d.destroy(item)
			return
		}
	}
}

func isDestroy(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindDestroy
}

// armDeadlineTimer implements the INIT step's "arm the deadline timer
// with a 'timeout source' registration on the trigger."
func (d *driver) armDeadlineTimer(item *RequestItem) {
	item.trigger.AddSource("timeout timer")
	item.deadlineTimer = d.afterFunc(item.Options.RequestTimeout(), func() {
		item.timerFired = true
		item.trigger.Fire(newErr(KindTimedOut, "deadline timer fired"))
	})
}

// destroy implements spec §4.3's destroy semantics: stop the deadline
// timer; if it had not yet fired, drop its "timeout timer" source. Guarded
// by item.destroyed so that a race between Close's forced Fire and the
// item's own natural completion never double-counts metrics or double-
// stops an already-stopped timer.
func (d *driver) destroy(item *RequestItem) {
	if item.destroyed {
		return
	}
	item.destroyed = true
	if item.deadlineTimer != nil {
		stopped := item.deadlineTimer.Stop()
		if stopped && !item.timerFired {
			item.trigger.DelSource("timeout timer")
		}
		item.deadlineTimer = nil
	}
	d.metrics.decInFlight()
	d.untrackLive(item)
}

func (d *driver) destroySilently(item *RequestItem) {
	d.destroy(item)
}

// publishFailure constructs a request-level failure result for item's
// kind and posts it to the application's reply channel, embedding the
// driver state active at the moment of failure if not already set.
func (d *driver) publishFailure(item *RequestItem, err error) {
	msg := err.Error()
	state := item.stateDesc()
	if ae, ok := err.(*Error); ok {
		if ae.State == "" {
			ae.State = state
		}
		msg = ae.Error()
	}
	evt := &ResultEvent{
		Type:   item.Kind,
		Opaque: item.Options.Opaque(),
		Err:    err,
		ErrMsg: msg,
	}
	d.deliver(item, evt)
}

func (d *driver) publishSuccess(item *RequestItem, result *ResultItem) {
	result.Opaque = item.Options.Opaque()
	evt := &ResultEvent{
		Type:   item.Kind,
		Opaque: item.Options.Opaque(),
		item:   result,
	}
	d.deliver(item, evt)
}

func (d *driver) deliver(item *RequestItem, evt *ResultEvent) {
	select {
	case item.replyCh <- evt:
	default:
		// The application's reply channel must be sized to never block
		// the driver; a full channel here means the application is not
		// draining it. We still must not block the driver thread, so we
		// log and drop rather than stall every other in-flight request.
		d.logger.Log(LogLevelWarn, "dropping result event because reply channel is full",
			"kind", item.Kind.String())
	}
}

// sendRequest is the shared tail of every codec's encode function: hand
// the built request to the broker's RequestSender, wiring the response
// handler to race the deadline timer via the item's trigger exactly as
// spec §4.1/§4.3 describe.
func (d *driver) sendRequest(item *RequestItem, broker *BrokerHandle, req kmsg.Request) error {
	trigger := item.trigger
	return broker.sender.Send(req, func(resp kmsg.Response, err error) {
		won := trigger.Disable()
		if won == nil {
			d.logger.Log(LogLevelInfo, "dropping reply: another source already completed this request's wait", "kind", item.Kind.String())
			return
		}
		if err != nil {
			won.Err = newErrf(KindProtocolParseFailure, "%v", err)
		} else {
			won.replyBuf = resp
		}
		d.repostCh <- won
	})
}

func (d *driver) forwardThrottle(throttleMillis int32) {
	if throttleMillis <= 0 {
		return
	}
	evt := ThrottleEvent{Millis: time.Duration(throttleMillis) * time.Millisecond}
	select {
	case d.events <- evt:
	default:
	}
	d.metrics.observeThrottle(evt.Millis)
}

func (d *driver) logUnknownResource(resourceType int8, name string) {
	d.logger.Log(LogLevelWarn, "skipping response element with unrecognized resource type",
		"resource_type", resourceType, "name", name)
}

func (d *driver) recordLatency(item *RequestItem) {
	if item.sentAt.IsZero() {
		return
	}
	d.metrics.observeLatency(item.Kind, d.now().Sub(item.sentAt))
}
