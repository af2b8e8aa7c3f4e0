package kadmin

// This file implements spec §6's five external submission functions.
// Each deep-copies its inputs (so the caller may free originals
// immediately after the call returns), validates them, and — for
// AlterConfigs/DescribeConfigs — resolves the broker-dispatch rule of
// spec §4.5 synchronously before ever touching the driver queue.

func toElements(args interface{}) []element {
	switch v := args.(type) {
	case []NewTopic:
		out := make([]element, len(v))
		for i, a := range v {
			out[i] = a
		}
		return out
	case []DeleteTopic:
		out := make([]element, len(v))
		for i, a := range v {
			out[i] = a
		}
		return out
	case []NewPartitions:
		out := make([]element, len(v))
		for i, a := range v {
			out[i] = a
		}
		return out
	case []ConfigResource:
		out := make([]element, len(v))
		for i, a := range v {
			out[i] = a
		}
		return out
	default:
		panic("kadmin: unhandled element slice type")
	}
}

// CreateTopics submits an asynchronous create-topics request (spec §6).
// newTopics is deep-copied; the caller may free it immediately after
// this call returns.
func (d *Client) CreateTopics(newTopics []NewTopic, opts *AdminOptions, replyCh chan *ResultEvent) {
	copied := copyNewTopics(newTopics)
	for _, t := range copied {
		if err := t.validate(); err != nil {
			deliverImmediateFailure(replyCh, KindCreateTopics, opts, err)
			return
		}
	}
	d.submit(KindCreateTopics, toElements(copied), opts, replyCh, createTopicsCodec())
}

// ValidateCreateTopics is CreateTopics with AdminOptions.ValidateOnly
// forced true, mirroring pkg/kadm's ValidateCreateTopics sugar.
func (d *Client) ValidateCreateTopics(newTopics []NewTopic, opts *AdminOptions, replyCh chan *ResultEvent) {
	if opts == nil {
		opts = NewAdminOptions(KindCreateTopics, d.cfg.defaultRequestTimeout)
	}
	_ = opts.SetValidateOnly(true)
	d.CreateTopics(newTopics, opts, replyCh)
}

// DeleteTopics submits an asynchronous delete-topics request.
func (d *Client) DeleteTopics(topics []DeleteTopic, opts *AdminOptions, replyCh chan *ResultEvent) {
	copied := copyDeleteTopics(topics)
	for _, t := range copied {
		if t.Topic == "" {
			deliverImmediateFailure(replyCh, KindDeleteTopics, opts, newErr(KindInvalidArg, "topic name must not be empty"))
			return
		}
	}
	d.submit(KindDeleteTopics, toElements(copied), opts, replyCh, deleteTopicsCodec())
}

// CreatePartitions submits an asynchronous create-partitions request.
func (d *Client) CreatePartitions(newPartitions []NewPartitions, opts *AdminOptions, replyCh chan *ResultEvent) {
	copied := copyNewPartitions(newPartitions)
	for _, p := range copied {
		if err := p.validate(); err != nil {
			deliverImmediateFailure(replyCh, KindCreatePartitions, opts, err)
			return
		}
	}
	d.submit(KindCreatePartitions, toElements(copied), opts, replyCh, createPartitionsCodec())
}

// ValidateCreatePartitions is CreatePartitions with ValidateOnly forced.
func (d *Client) ValidateCreatePartitions(newPartitions []NewPartitions, opts *AdminOptions, replyCh chan *ResultEvent) {
	if opts == nil {
		opts = NewAdminOptions(KindCreatePartitions, d.cfg.defaultRequestTimeout)
	}
	_ = opts.SetValidateOnly(true)
	d.CreatePartitions(newPartitions, opts, replyCh)
}

// AlterConfigs submits an asynchronous alter-configs request. Per spec
// §4.5, zero or one BROKER resource is resolved synchronously into a
// broker-id override; two or more is a CONFLICT delivered immediately
// with no request sent (scenario 7).
func (d *Client) AlterConfigs(resources []ConfigResource, opts *AdminOptions, replyCh chan *ResultEvent) {
	copied := copyConfigResources(resources)
	brokerID, err := resolveConfigBroker(toElements(copied))
	if err != nil {
		deliverImmediateFailure(replyCh, KindAlterConfigs, opts, err)
		return
	}
	if opts == nil {
		opts = NewAdminOptions(KindAlterConfigs, d.cfg.defaultRequestTimeout)
	}
	if opts.Broker() == -1 {
		_ = opts.SetBroker(brokerID)
	}
	d.submit(KindAlterConfigs, toElements(copied), opts, replyCh, alterConfigsCodec())
}

// DescribeConfigs submits an asynchronous describe-configs request,
// applying the same broker-dispatch rule as AlterConfigs (spec §4.5).
func (d *Client) DescribeConfigs(resources []ConfigResource, opts *AdminOptions, replyCh chan *ResultEvent) {
	copied := copyConfigResources(resources)
	brokerID, err := resolveConfigBroker(toElements(copied))
	if err != nil {
		deliverImmediateFailure(replyCh, KindDescribeConfigs, opts, err)
		return
	}
	if opts == nil {
		opts = NewAdminOptions(KindDescribeConfigs, d.cfg.defaultRequestTimeout)
	}
	if opts.Broker() == -1 {
		_ = opts.SetBroker(brokerID)
	}
	d.submit(KindDescribeConfigs, toElements(copied), opts, replyCh, describeConfigsCodec())
}

// deliverImmediateFailure constructs and posts a request-level failure
// result without ever touching the driver queue, for validation
// failures and the AlterConfigs/DescribeConfigs conflict rule that spec
// §4.5/§9 scenario 7 require to bypass the network entirely.
func deliverImmediateFailure(replyCh chan *ResultEvent, kind RequestKind, opts *AdminOptions, err error) {
	var opaque interface{}
	if opts != nil {
		opaque = opts.Opaque()
	}
	evt := &ResultEvent{
		Type:   kind,
		Opaque: opaque,
		Err:    err,
		ErrMsg: err.Error(),
	}
	select {
	case replyCh <- evt:
	default:
	}
}
