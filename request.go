package kadmin

import (
	"time"

	"github.com/twmb/franz-go/pkg/kmsg"
)

// State is the RequestItem's position in the driver's state graph.
// State transitions occur only on the driver thread (spec §3 invariant 1).
type State int8

const (
	StateInit State = iota
	StateWaitBroker
	StateWaitController
	StateConstructRequest
	StateWaitResponse
)

// stateDesc mirrors rdkafka_admin.c's rd_kafka_admin_state_desc[]: a
// human-readable name for each state, embedded in TIMED_OUT errstrs.
var stateDesc = [...]string{
	StateInit:             "initializing",
	StateWaitBroker:       "waiting for broker",
	StateWaitController:   "waiting for controller",
	StateConstructRequest: "constructing request",
	StateWaitResponse:     "waiting for response",
}

func (s State) String() string {
	if int(s) < len(stateDesc) {
		return stateDesc[s]
	}
	return "unknown"
}

// codec is the pair of functions bound to a RequestItem's kind: encode
// builds and sends the wire request against a broker handle, decode
// turns a reply buffer into a ResultItem.
type codec struct {
	encode func(d *driver, item *RequestItem, broker *BrokerHandle) error
	decode func(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error)
}

// RequestItem is the typed envelope for one in-flight admin request. It
// is exclusively owned by the driver goroutine except for the single
// field (the trigger's internal item pointer) accessed by whichever
// source wins an arming (spec §5 shared resource discipline).
type RequestItem struct {
	Kind    RequestKind
	state   State
	Args    []element // immutable after submission (spec §3 invariant 2)
	Options AdminOptions

	deadline time.Time // absolute T_req

	BrokerID int32 // -1 means "use controller"

	replyCh chan *ResultEvent

	trigger       *OneShotTrigger
	deadlineTimer stoppableTimer
	timerFired    bool

	replyBuf kmsg.Response // non-nil only while in StateWaitResponse

	codec codec

	broker *BrokerHandle // held from lookup until released in CONSTRUCT_REQUEST

	Err error // non-nil signals preconditions should short-circuit this step

	sentAt time.Time

	destroyed bool // guards destroy() against running twice for this item
}

// element is the minimal interface every per-API input value type
// implements so the shared decode/reorder helpers in codec.go can work
// generically across APIs.
type element interface {
	// identifier returns the comparator key used to reorder responses:
	// a topic name, or "type/name" for config resources.
	identifier() string
}

func (r *RequestItem) stateDesc() string { return r.state.String() }

// deadlineExceeded reports whether T_req has passed.
func (r *RequestItem) deadlineExceeded(now time.Time) bool {
	return now.After(r.deadline)
}
