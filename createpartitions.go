package kadmin

import (
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// NewPartitions is the input value type for CreatePartitions (spec §3).
// Replicas, if set, holds one entry per newly added partition, in
// increasing partition order starting at the topic's current partition
// count.
type NewPartitions struct {
	Topic      string
	TotalCount int32
	Replicas   [][]int32
}

func (p NewPartitions) identifier() string { return p.Topic }

func (p NewPartitions) validate() error {
	if p.Topic == "" {
		return newErr(KindInvalidArg, "topic name must not be empty")
	}
	if p.TotalCount < 1 {
		return newErrf(KindInvalidArg, "topic %q: total_count must be >= 1", p.Topic)
	}
	return nil
}

func copyNewPartitions(in []NewPartitions) []NewPartitions {
	out := make([]NewPartitions, len(in))
	for i, p := range in {
		out[i] = p
		if p.Replicas != nil {
			out[i].Replicas = make([][]int32, len(p.Replicas))
			for j, rs := range p.Replicas {
				out[i].Replicas[j] = append([]int32(nil), rs...)
			}
		}
	}
	return out
}

func createPartitionsCodec() codec {
	return codec{encode: encodeCreatePartitions, decode: decodeCreatePartitions}
}

func encodeCreatePartitions(d *driver, item *RequestItem, broker *BrokerHandle) error {
	req := kmsg.NewPtrCreatePartitionsRequest()
	req.TimeoutMillis = int32(item.Options.OperationTimeout().Milliseconds())
	req.ValidateOnly = item.Options.ValidateOnly()
	for _, a := range item.Args {
		p := a.(NewPartitions)
		rt := kmsg.NewCreatePartitionsRequestTopic()
		rt.Topic = p.Topic
		rt.Count = p.TotalCount
		for _, replicas := range p.Replicas {
			ra := kmsg.NewCreatePartitionsRequestTopicAssignment()
			ra.Replicas = replicas
			rt.Assignment = append(rt.Assignment, ra)
		}
		req.Topics = append(req.Topics, rt)
	}
	return d.sendRequest(item, broker, req)
}

func decodeCreatePartitions(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error) {
	resp := reply.(*kmsg.CreatePartitionsResponse)
	d.forwardThrottle(resp.ThrottleMillis)

	if err := checkArity(len(resp.Topics), len(item.Args)); err != nil {
		return nil, err
	}

	idx := buildIndex(item.Args)
	filled := make([]bool, len(item.Args))
	out := make([]PartitionsResult, len(item.Args))

	operationTimeout := item.Options.OperationTimeout().Milliseconds()
	for _, t := range resp.Topics {
		slot, err := lookupSlot(idx, filled, t.Topic)
		if err != nil {
			return nil, err
		}
		filled[slot] = true
		code := hideTimeout(t.ErrorCode, operationTimeout)
		out[slot] = PartitionsResult{
			Topic:   t.Topic,
			ErrCode: code,
			Err:     kerr.ErrorForCode(code),
			ErrMsg:  errMsgFor(code, t.ErrorMessage),
		}
	}
	return &ResultItem{Kind: KindCreatePartitions, Partitions: out}, nil
}
