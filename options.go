package kadmin

import "time"

// RequestKind identifies which admin API a request targets; declared here since
// AdminOptions applicability is keyed off it.
type RequestKind int8

const (
	KindCreateTopics RequestKind = iota
	KindDeleteTopics
	KindCreatePartitions
	KindAlterConfigs
	KindDescribeConfigs
)

func (k RequestKind) String() string {
	switch k {
	case KindCreateTopics:
		return "CreateTopics"
	case KindDeleteTopics:
		return "DeleteTopics"
	case KindCreatePartitions:
		return "CreatePartitions"
	case KindAlterConfigs:
		return "AlterConfigs"
	case KindDescribeConfigs:
		return "DescribeConfigs"
	default:
		return "Unknown"
	}
}

const (
	minRequestTimeout = 0
	maxRequestTimeout = 3_600_000 * time.Millisecond

	minOperationTimeout = -1 * time.Millisecond
	maxOperationTimeout = 3_600_000 * time.Millisecond
)

// AdminOptions is a validated, per-API option bag shared by all five
// submission functions. It is snapshotted by value onto the RequestItem
// at submission time (spec §3 "options: by-value snapshot").
type AdminOptions struct {
	kind            RequestKind
	requestTimeout  time.Duration
	operationTimeout time.Duration
	validateOnly    bool
	incremental     bool
	broker          int32 // -1 means unset (use controller)
	opaque          interface{}
}

// NewAdminOptions returns options for the given API with documented
// per-API defaults: request_timeout from the client's default, and
// operation_timeout of 0 for the APIs that carry one.
func NewAdminOptions(kind RequestKind, defaultRequestTimeout time.Duration) *AdminOptions {
	return &AdminOptions{
		kind:           kind,
		requestTimeout: defaultRequestTimeout,
		broker:         -1,
	}
}

func unsupported(opt string, kind RequestKind) error {
	return newErrf(KindInvalidArg, "option %q is not supported for %s", opt, kind)
}

// SetRequestTimeout sets the absolute in-engine deadline. Applicable to
// all APIs.
func (o *AdminOptions) SetRequestTimeout(d time.Duration) error {
	if d < minRequestTimeout || d > maxRequestTimeout {
		return newErrf(KindInvalidArg, "request_timeout %v out of range [0, 1h]", d)
	}
	o.requestTimeout = d
	return nil
}

func (o *AdminOptions) RequestTimeout() time.Duration { return o.requestTimeout }

// SetOperationTimeout sets the server-side operation deadline. Applicable
// only to CreateTopics, DeleteTopics, and CreatePartitions.
func (o *AdminOptions) SetOperationTimeout(d time.Duration) error {
	switch o.kind {
	case KindCreateTopics, KindDeleteTopics, KindCreatePartitions:
	default:
		return unsupported("operation_timeout", o.kind)
	}
	if d < minOperationTimeout || d > maxOperationTimeout {
		return newErrf(KindInvalidArg, "operation_timeout %v out of range [-1ms, 1h]", d)
	}
	o.operationTimeout = d
	return nil
}

func (o *AdminOptions) OperationTimeout() time.Duration { return o.operationTimeout }

// SetValidateOnly sets server-side validate-without-apply. Applicable to
// CreateTopics, CreatePartitions, and AlterConfigs.
func (o *AdminOptions) SetValidateOnly(v bool) error {
	switch o.kind {
	case KindCreateTopics, KindCreatePartitions, KindAlterConfigs:
	default:
		return unsupported("validate_only", o.kind)
	}
	o.validateOnly = v
	return nil
}

func (o *AdminOptions) ValidateOnly() bool { return o.validateOnly }

// SetIncremental reserves incremental semantics for AlterConfigs.
func (o *AdminOptions) SetIncremental(v bool) error {
	if o.kind != KindAlterConfigs {
		return unsupported("incremental", o.kind)
	}
	o.incremental = v
	return nil
}

func (o *AdminOptions) Incremental() bool { return o.incremental }

// SetBroker overrides the target broker for this request, bypassing
// controller resolution. Applicable to all APIs. id must be >= 0 or -1 to
// clear the override.
func (o *AdminOptions) SetBroker(id int32) error {
	if id < -1 {
		return newErrf(KindInvalidArg, "broker id %d must be >= 0 or -1", id)
	}
	o.broker = id
	return nil
}

func (o *AdminOptions) Broker() int32 { return o.broker }

// SetOpaque attaches a caller cookie returned verbatim in the result
// event. Applicable to all APIs.
func (o *AdminOptions) SetOpaque(v interface{}) { o.opaque = v }

func (o *AdminOptions) Opaque() interface{} { return o.opaque }

// snapshot returns a by-value copy suitable for attaching to a
// RequestItem; AdminOptions contains no reference types requiring a deep
// copy beyond the struct copy itself (opaque is caller-owned and never
// mutated by the engine).
func (o AdminOptions) snapshot() AdminOptions { return o }
