package kadmin

import (
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// NewTopic is the input value type for a single topic in a CreateTopics
// request (spec §3 "NewTopic"). Replicas and ReplicationFactor are
// mutually exclusive: set exactly one.
type NewTopic struct {
	Topic             string
	PartitionCount    int32
	ReplicationFactor int16 // -1 if Replicas is set
	// Replicas holds one entry per partition, in increasing partition
	// order starting at 0, each an ordered list of broker IDs.
	Replicas [][]int32
	Config   []ConfigEntry
}

func (t NewTopic) identifier() string { return t.Topic }

// validate enforces spec §3's NewTopic rules. Replica assignments are
// positional (Replicas[p] is partition p), so they are in partition order
// by construction and validate does not check their order.
func (t NewTopic) validate() error {
	if t.Topic == "" {
		return newErr(KindInvalidArg, "topic name must not be empty")
	}
	if len(t.Replicas) > 0 && t.ReplicationFactor != -1 {
		return newErrf(KindInvalidArg, "topic %q: explicit replica assignment is mutually exclusive with a numeric replication factor", t.Topic)
	}
	if len(t.Replicas) == 0 {
		if t.PartitionCount < 1 {
			return newErrf(KindInvalidArg, "topic %q: partition_count must be >= 1", t.Topic)
		}
		if t.ReplicationFactor < -1 {
			return newErrf(KindInvalidArg, "topic %q: replication_factor must be >= -1", t.Topic)
		}
	}
	return nil
}

// copyNewTopics deep-copies caller input so the caller may free its own
// storage immediately after submission (spec §3 invariant 2, §8 "Input
// copies are truly independent").
func copyNewTopics(in []NewTopic) []NewTopic {
	out := make([]NewTopic, len(in))
	for i, t := range in {
		out[i] = t
		if t.Replicas != nil {
			out[i].Replicas = make([][]int32, len(t.Replicas))
			for j, rs := range t.Replicas {
				out[i].Replicas[j] = append([]int32(nil), rs...)
			}
		}
		out[i].Config = append([]ConfigEntry(nil), t.Config...)
	}
	return out
}

func createTopicsCodec() codec {
	return codec{encode: encodeCreateTopics, decode: decodeCreateTopics}
}

func encodeCreateTopics(d *driver, item *RequestItem, broker *BrokerHandle) error {
	req := kmsg.NewPtrCreateTopicsRequest()
	req.TimeoutMillis = int32(item.Options.OperationTimeout().Milliseconds())
	req.ValidateOnly = item.Options.ValidateOnly()
	for _, a := range item.Args {
		t := a.(NewTopic)
		rt := kmsg.NewCreateTopicsRequestTopic()
		rt.Topic = t.Topic
		rt.NumPartitions = t.PartitionCount
		rt.ReplicationFactor = t.ReplicationFactor
		if len(t.Replicas) > 0 {
			rt.NumPartitions = -1
			rt.ReplicationFactor = -1
			for p, replicas := range t.Replicas {
				ra := kmsg.NewCreateTopicsRequestTopicReplicaAssignment()
				ra.Partition = int32(p)
				ra.Replicas = replicas
				rt.ReplicaAssignment = append(rt.ReplicaAssignment, ra)
			}
		}
		for _, c := range t.Config {
			rc := kmsg.NewCreateTopicsRequestTopicConfig()
			rc.Name = c.Name
			rc.Value = c.Value
			rt.Configs = append(rt.Configs, rc)
		}
		req.Topics = append(req.Topics, rt)
	}
	return d.sendRequest(item, broker, req)
}

func decodeCreateTopics(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error) {
	resp := reply.(*kmsg.CreateTopicsResponse)
	d.forwardThrottle(resp.ThrottleMillis)

	if err := checkArity(len(resp.Topics), len(item.Args)); err != nil {
		return nil, err
	}

	idx := buildIndex(item.Args)
	filled := make([]bool, len(item.Args))
	out := make([]TopicResult, len(item.Args))

	operationTimeout := item.Options.OperationTimeout().Milliseconds()
	for _, t := range resp.Topics {
		slot, err := lookupSlot(idx, filled, t.Topic)
		if err != nil {
			return nil, err
		}
		filled[slot] = true
		code := hideTimeout(t.ErrorCode, operationTimeout)
		out[slot] = TopicResult{
			Topic:   t.Topic,
			ErrCode: code,
			Err:     kerr.ErrorForCode(code),
			ErrMsg:  errMsgFor(code, t.ErrorMessage),
		}
	}
	return &ResultItem{Kind: KindCreateTopics, Topics: out}, nil
}
