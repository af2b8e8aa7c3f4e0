package kadmin

import (
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// DeleteTopic is the input value type for DeleteTopics (spec §3).
type DeleteTopic struct {
	Topic string
}

func (t DeleteTopic) identifier() string { return t.Topic }

func copyDeleteTopics(in []DeleteTopic) []DeleteTopic {
	return append([]DeleteTopic(nil), in...)
}

func deleteTopicsCodec() codec {
	return codec{encode: encodeDeleteTopics, decode: decodeDeleteTopics}
}

func encodeDeleteTopics(d *driver, item *RequestItem, broker *BrokerHandle) error {
	req := kmsg.NewPtrDeleteTopicsRequest()
	req.TimeoutMillis = int32(item.Options.OperationTimeout().Milliseconds())
	for _, a := range item.Args {
		t := a.(DeleteTopic)
		rt := kmsg.NewDeleteTopicsRequestTopic()
		topic := t.Topic
		rt.Topic = &topic
		req.Topics = append(req.Topics, rt)
		req.TopicNames = append(req.TopicNames, t.Topic)
	}
	return d.sendRequest(item, broker, req)
}

func decodeDeleteTopics(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error) {
	resp := reply.(*kmsg.DeleteTopicsResponse)
	d.forwardThrottle(resp.ThrottleMillis)

	if err := checkArity(len(resp.Topics), len(item.Args)); err != nil {
		return nil, err
	}

	idx := buildIndex(item.Args)
	filled := make([]bool, len(item.Args))
	out := make([]TopicResult, len(item.Args))

	operationTimeout := item.Options.OperationTimeout().Milliseconds()
	for _, t := range resp.Topics {
		var topic string
		if t.Topic != nil {
			topic = *t.Topic
		}
		slot, err := lookupSlot(idx, filled, topic)
		if err != nil {
			return nil, err
		}
		filled[slot] = true
		code := hideTimeout(t.ErrorCode, operationTimeout)
		out[slot] = TopicResult{
			Topic:   topic,
			ErrCode: code,
			Err:     kerr.ErrorForCode(code),
			ErrMsg:  errMsgFor(code, t.ErrorMessage),
		}
	}
	return &ResultItem{Kind: KindDeleteTopics, Topics: out}, nil
}
