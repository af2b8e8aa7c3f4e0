package kadmin

import (
	"strconv"

	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// ConfigResource is the input value type shared by AlterConfigs and
// DescribeConfigs (spec §3).
type ConfigResource struct {
	Type   ResourceType
	Name   string
	Config []ConfigEntry

	// Err/ErrMsg are not read or set by the engine.
	Err    error
	ErrMsg string
}

func (r ConfigResource) identifier() string { return resourceKey(r.Type, r.Name) }

func copyConfigResources(in []ConfigResource) []ConfigResource {
	out := make([]ConfigResource, len(in))
	for i, r := range in {
		out[i] = r
		out[i].Config = append([]ConfigEntry(nil), r.Config...)
	}
	return out
}

// resolveConfigBroker implements spec §4.5: scan args for BROKER
// resources before enqueueing and decide the target broker id.
//
//   - zero BROKER resources: use the controller (-1).
//   - exactly one: parse its Name as a base-10 int32 >= 0.
//   - two or more: KindConflict.
func resolveConfigBroker(args []element) (int32, error) {
	var brokerName string
	count := 0
	for _, a := range args {
		r := a.(ConfigResource)
		if r.Type == ResourceBroker {
			count++
			brokerName = r.Name
		}
	}
	switch {
	case count == 0:
		return -1, nil
	case count == 1:
		id, err := strconv.ParseInt(brokerName, 10, 32)
		if err != nil || id < 0 {
			return 0, newErrf(KindInvalidArg, "broker resource name %q is not a valid non-negative broker id", brokerName)
		}
		return int32(id), nil
	default:
		return 0, newErr(KindConflict, "more than one BROKER resource given in a single request")
	}
}

func alterConfigsCodec() codec {
	return codec{encode: encodeAlterConfigs, decode: decodeAlterConfigs}
}

func alterConfigsResourceType(t ResourceType) int8 {
	switch t {
	case ResourceAny:
		return 1
	case ResourceTopic:
		return 2
	case ResourceGroup:
		return 3
	case ResourceBroker:
		return 4
	default:
		return 0
	}
}

func resourceTypeFromWire(t int8) ResourceType {
	switch t {
	case 1:
		return ResourceAny
	case 2:
		return ResourceTopic
	case 3:
		return ResourceGroup
	case 4:
		return ResourceBroker
	default:
		return ResourceUnknown
	}
}

func encodeAlterConfigs(d *driver, item *RequestItem, broker *BrokerHandle) error {
	req := kmsg.NewPtrAlterConfigsRequest()
	req.ValidateOnly = item.Options.ValidateOnly()
	for _, a := range item.Args {
		r := a.(ConfigResource)
		rr := kmsg.NewAlterConfigsRequestResource()
		rr.ResourceType = kmsg.ConfigResourceType(alterConfigsResourceType(r.Type))
		rr.ResourceName = r.Name
		for _, c := range r.Config {
			rc := kmsg.NewAlterConfigsRequestResourceConfig()
			rc.Name = c.Name
			rc.Value = c.Value
			rr.Configs = append(rr.Configs, rc)
		}
		req.Resources = append(req.Resources, rr)
	}
	return d.sendRequest(item, broker, req)
}

func decodeAlterConfigs(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error) {
	resp := reply.(*kmsg.AlterConfigsResponse)
	d.forwardThrottle(resp.ThrottleMillis)

	if err := checkArity(len(resp.Resources), len(item.Args)); err != nil {
		return nil, err
	}

	idx := buildIndex(item.Args)
	filled := make([]bool, len(item.Args))
	out := make([]ConfigResourceResult, len(item.Args))
	numFilled := 0

	for _, rr := range resp.Resources {
		typ := resourceTypeFromWire(int8(rr.ResourceType))
		if typ == ResourceUnknown {
			// spec §4.4 rule 6: unknown resource types are logged and
			// skipped, not a protocol-parse failure.
			d.logUnknownResource(int8(rr.ResourceType), rr.ResourceName)
			continue
		}
		slot, err := lookupSlot(idx, filled, resourceKey(typ, rr.ResourceName))
		if err != nil {
			return nil, err
		}
		filled[slot] = true
		numFilled++
		code := rr.ErrorCode
		out[slot] = ConfigResourceResult{
			Type:    typ,
			Name:    rr.ResourceName,
			ErrCode: code,
			Err:     kerr.ErrorForCode(code),
			ErrMsg:  errMsgFor(code, rr.ErrorMessage),
		}
	}
	out = compactUnfilled(out, filled)
	return &ResultItem{Kind: KindAlterConfigs, Resources: out}, nil
}

// compactUnfilled drops slots that no response element populated (spec
// §4.4 rule 6: an unrecognized resource type occupies no slot, detected
// by the application via size < request size).
func compactUnfilled(results []ConfigResourceResult, filled []bool) []ConfigResourceResult {
	allFilled := true
	for _, f := range filled {
		if !f {
			allFilled = false
			break
		}
	}
	if allFilled {
		return results
	}
	out := make([]ConfigResourceResult, 0, len(results))
	for i, f := range filled {
		if f {
			out = append(out, results[i])
		}
	}
	return out
}
