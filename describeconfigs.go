package kadmin

import (
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// maxSynonymsPerEntry caps the number of synonyms decoded per config
// entry as a DoS guard (spec §4.4, SPEC_FULL.md §11 item 3). This is a
// heuristic, tunable by implementations.
const maxSynonymsPerEntry = 100_000

func describeConfigsCodec() codec {
	return codec{encode: encodeDescribeConfigs, decode: decodeDescribeConfigs}
}

func encodeDescribeConfigs(d *driver, item *RequestItem, broker *BrokerHandle) error {
	req := kmsg.NewPtrDescribeConfigsRequest()
	req.IncludeSynonyms = true
	for _, a := range item.Args {
		r := a.(ConfigResource)
		rr := kmsg.NewDescribeConfigsRequestResource()
		rr.ResourceType = kmsg.ConfigResourceType(alterConfigsResourceType(r.Type))
		rr.ResourceName = r.Name
		for _, c := range r.Config {
			name := c.Name
			rr.ConfigNames = append(rr.ConfigNames, name)
		}
		req.Resources = append(req.Resources, rr)
	}
	return d.sendRequest(item, broker, req)
}

func decodeDescribeConfigs(d *driver, item *RequestItem, reply kmsg.Response) (*ResultItem, error) {
	resp := reply.(*kmsg.DescribeConfigsResponse)
	version := reply.GetVersion()
	d.forwardThrottle(resp.ThrottleMillis)

	if err := checkArity(len(resp.Resources), len(item.Args)); err != nil {
		return nil, err
	}

	idx := buildIndex(item.Args)
	filled := make([]bool, len(item.Args))
	out := make([]ConfigResourceResult, len(item.Args))

	for _, rr := range resp.Resources {
		typ := resourceTypeFromWire(int8(rr.ResourceType))
		if typ == ResourceUnknown {
			d.logUnknownResource(int8(rr.ResourceType), rr.ResourceName)
			continue
		}
		slot, err := lookupSlot(idx, filled, resourceKey(typ, rr.ResourceName))
		if err != nil {
			return nil, err
		}
		filled[slot] = true
		code := rr.ErrorCode

		entries := make([]ConfigEntry, len(rr.Configs))
		for i, c := range rr.Configs {
			entries[i] = decodeConfigEntry(c, version)
		}

		out[slot] = ConfigResourceResult{
			Type:    typ,
			Name:    rr.ResourceName,
			Config:  entries,
			ErrCode: code,
			Err:     kerr.ErrorForCode(code),
			ErrMsg:  errMsgFor(code, rr.ErrorMessage),
		}
	}
	out = compactUnfilled(out, filled)
	return &ResultItem{Kind: KindDescribeConfigs, Resources: out}, nil
}

// decodeConfigEntry applies the v0/v1 source reconciliation from spec
// §4.4: v0 carries IsDefault and synthesizes Source; v1 carries an
// explicit Source and synthesizes IsDefault. Synonyms only exist in v1.
// version is the negotiated DescribeConfigs API version read off the
// reply buffer (kmsg.Response.GetVersion), not guessed from payload
// shape — a legitimate v1 entry can have a zero Source and no synonyms,
// which is indistinguishable from v0 by content alone. Grounded on
// rdkafka_admin.c's rd_kafka_buf_ApiVersion(reply) == 0 check.
func decodeConfigEntry(c kmsg.DescribeConfigsResponseResourceConfig, version int16) ConfigEntry {
	e := ConfigEntry{
		Name:        c.Name,
		ReadOnly:    c.ReadOnly,
		IsSensitive: c.IsSensitive,
	}
	if c.Value != nil {
		e.Value = c.Value
	}

	if version == 0 {
		// v0: IsDefault boolean, synthesize Source.
		e.IsDefault = c.IsDefault
		if c.IsDefault {
			e.Source = ConfigSourceDefaultConfig
		}
		return e
	}

	// v1+: explicit source.
	e.Source = ConfigSource(c.Source)
	e.IsDefault = e.Source == ConfigSourceDefaultConfig

	n := len(c.ConfigSynonyms)
	if n > maxSynonymsPerEntry {
		n = maxSynonymsPerEntry
	}
	e.Synonyms = make([]ConfigSynonym, n)
	for i := 0; i < n; i++ {
		s := c.ConfigSynonyms[i]
		var val string
		if s.Value != nil {
			val = *s.Value
		}
		e.Synonyms[i] = ConfigSynonym{Name: s.Name, Value: val, Source: ConfigSource(s.Source)}
	}
	return e
}
