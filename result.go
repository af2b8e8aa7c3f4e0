package kadmin

// ConfigSource mirrors the wire enum for where a configuration entry's
// value came from.
type ConfigSource int8

const (
	ConfigSourceUnknown ConfigSource = iota
	ConfigSourceDynamicTopic
	ConfigSourceDynamicBroker
	ConfigSourceDynamicDefaultBroker
	ConfigSourceStaticBroker
	ConfigSourceDefaultConfig
)

// ConfigOperation is the client-side action requested for a ConfigEntry
// inside an AlterConfigs request.
type ConfigOperation int8

const (
	ConfigOpSet ConfigOperation = iota
	ConfigOpDelete
	ConfigOpAppend
	ConfigOpSubtract
)

// legacy three-valued operation set named in spec §3 (ADD, SET, DELETE);
// ConfigOpAppend is the incremental-alter "ADD" analog, kept distinct
// from ConfigOpSet because AlterConfigs (non-incremental) only ever uses
// ConfigOpSet/ConfigOpDelete while incremental AlterConfigs may use all
// four (spec §4.2 "incremental" option).

// ConfigSynonym is one fallback source for a configuration entry,
// decoded only on the v1 DescribeConfigs wire format.
type ConfigSynonym struct {
	Name   string
	Value  string
	Source ConfigSource
}

// ConfigEntry is one configuration key/value as used both in requests
// (AlterConfigs) and responses (DescribeConfigs).
type ConfigEntry struct {
	Name      string
	Value     *string
	Operation ConfigOperation

	// Response-only fields, populated by DescribeConfigs:
	Source      ConfigSource
	ReadOnly    bool
	IsDefault   bool
	IsSensitive bool
	IsSynonym   bool
	Synonyms    []ConfigSynonym
}

// ResourceType identifies what kind of entity a ConfigResource names.
type ResourceType int8

const (
	ResourceUnknown ResourceType = iota
	ResourceAny
	ResourceTopic
	ResourceGroup
	ResourceBroker
)

func (t ResourceType) String() string {
	switch t {
	case ResourceAny:
		return "ANY"
	case ResourceTopic:
		return "TOPIC"
	case ResourceGroup:
		return "GROUP"
	case ResourceBroker:
		return "BROKER"
	default:
		return "UNKNOWN"
	}
}

// TopicResult is one element outcome for CreateTopics/DeleteTopics.
type TopicResult struct {
	Topic    string
	ErrCode  int16
	Err      error
	ErrMsg   string
}

func (r TopicResult) identifier() string { return r.Topic }

// PartitionsResult is one element outcome for CreatePartitions.
type PartitionsResult struct {
	Topic   string
	ErrCode int16
	Err     error
	ErrMsg  string
}

func (r PartitionsResult) identifier() string { return r.Topic }

// ConfigResourceResult is one element outcome for AlterConfigs and
// DescribeConfigs.
type ConfigResourceResult struct {
	Type    ResourceType
	Name    string
	Config  []ConfigEntry // populated only for DescribeConfigs
	ErrCode int16
	Err     error
	ErrMsg  string
}

func (r ConfigResourceResult) identifier() string { return resourceKey(r.Type, r.Name) }

// ResultItem is the typed outcome envelope delivered to the application.
// Slot i of whichever typed accessor is populated corresponds to the
// i-th input element the caller submitted (spec §3 ResultItem; §4.4
// reordering rule).
type ResultItem struct {
	Kind RequestKind

	// Err and ErrMsg are request-level: non-nil Err means the whole
	// request failed and the element slices below are empty.
	Err    error
	ErrMsg string

	Topics     []TopicResult
	Partitions []PartitionsResult
	Resources  []ConfigResourceResult

	Opaque interface{}
}

// ResultEvent is the event delivered on the application's reply channel.
// It wraps a ResultItem with the envelope fields described in spec §6.
type ResultEvent struct {
	Type   RequestKind
	Opaque interface{}
	Err    error
	ErrMsg string
	item   *ResultItem
}

// Topics returns the ordered per-topic results for CreateTopics or
// DeleteTopics events. Lifetime of the returned slice equals the
// lifetime of the event (spec §6 result accessor contract).
func (e *ResultEvent) Topics() []TopicResult {
	if e.item == nil {
		return nil
	}
	return e.item.Topics
}

// Partitions returns the ordered per-topic results for a CreatePartitions
// event.
func (e *ResultEvent) Partitions() []PartitionsResult {
	if e.item == nil {
		return nil
	}
	return e.item.Partitions
}

// Resources returns the ordered per-resource results for AlterConfigs or
// DescribeConfigs events.
func (e *ResultEvent) Resources() []ConfigResourceResult {
	if e.item == nil {
		return nil
	}
	return e.item.Resources
}

func resourceKey(t ResourceType, name string) string {
	return t.String() + "/" + name
}
