package kadmin

import (
	"fmt"

	"github.com/twmb/franz-go/pkg/kerr"
)

// Kind enumerates the engine-level error taxonomy from which a request
// can fail at the request level. Element-level (per-topic, per-resource)
// errors are server error codes surfaced verbatim through kerr and never
// use Kind.
type Kind int8

const (
	// KindUnknown is the zero value; never produced deliberately.
	KindUnknown Kind = iota
	// KindInvalidArg means the caller passed a malformed value type or
	// violated a documented constraint.
	KindInvalidArg
	// KindTimedOut means the request-level deadline elapsed before a
	// response arrived.
	KindTimedOut
	// KindConflict means multiple BROKER config resources were given in
	// one AlterConfigs/DescribeConfigs call.
	KindConflict
	// KindProtocolParseFailure means the reply structure did not match
	// expectations: arity violation, unknown element, or duplicate
	// element.
	KindProtocolParseFailure
	// KindDestroy means the request was cancelled by client shutdown. It
	// never surfaces to the application as a delivered event.
	KindDestroy
	// KindEncodeFailed means the codec's encode step failed before a
	// request was ever sent to a broker.
	KindEncodeFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArg:
		return "INVALID_ARG"
	case KindTimedOut:
		return "TIMED_OUT"
	case KindConflict:
		return "CONFLICT"
	case KindProtocolParseFailure:
		return "PROTOCOL_PARSE_FAILURE"
	case KindDestroy:
		return "DESTROY"
	case KindEncodeFailed:
		return "ENCODE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Error is the request-level error type delivered on a result event's
// Err field. State, when non-empty, names the driver state active when
// the error occurred (populated for KindTimedOut and for errors
// encountered mid-transition), mirroring rdkafka_admin.c's practice of
// embedding a human-readable state name in timeout error strings.
type Error struct {
	Kind    Kind
	Message string
	State   string
}

func (e *Error) Error() string {
	if e.State != "" {
		return fmt.Sprintf("%s: %s (state: %s)", e.Kind, e.Message, e.State)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func newErrf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// errDestroy is a shared sentinel used to mark an item for silent,
// resultless cancellation (spec §7 KindDestroy).
var errDestroy = newErr(KindDestroy, "client is terminating")

// canonicalMessage returns a human-readable string for a Kafka error
// code, used when a response omits or empties a per-element error
// message (spec §4.4 rule 5). This intentionally does not differ by wire
// version; see SPEC_FULL.md §11 item 2.
func canonicalMessage(code int16) string {
	if code == 0 {
		return ""
	}
	// kerr.ErrorForCode maps every code it does not know to
	// UNKNOWN_SERVER_ERROR, so that case is told apart here.
	err := kerr.ErrorForCode(code)
	if err == kerr.UnknownServerError && code != kerr.UnknownServerError.Code {
		return fmt.Sprintf("unknown error code %d", code)
	}
	return err.Error()
}
