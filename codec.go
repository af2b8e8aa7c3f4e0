package kadmin

// buildIndex lazily builds the identifier -> slot index for a request's
// args, used by the per-API decoders to reorder responses (spec §4.4
// rule 3). A linear scan is acceptable for typical admin batch sizes
// (SPEC_FULL.md / spec §9 "Reordering via identifier lookup"); the index
// is still worth building once per decode rather than re-scanning per
// response element.
func buildIndex(args []element) map[string]int {
	idx := make(map[string]int, len(args))
	for i, a := range args {
		idx[a.identifier()] = i
	}
	return idx
}

// checkArity enforces spec §4.4 rule 2: the response element count must
// not exceed the request element count.
func checkArity(respLen, reqLen int) error {
	if respLen > reqLen {
		return newErrf(KindProtocolParseFailure, "response contains %d elements, more than the %d requested", respLen, reqLen)
	}
	return nil
}

// lookupSlot finds the unique request slot for identifier k, applying
// spec §4.4 rule 3: not found, or a slot already populated (filled[i]
// true), is a protocol-parse failure.
func lookupSlot(idx map[string]int, filled []bool, k string) (int, error) {
	i, ok := idx[k]
	if !ok {
		return -1, newErrf(KindProtocolParseFailure, "response element %q does not match any requested element", k)
	}
	if filled[i] {
		return -1, newErrf(KindProtocolParseFailure, "response element %q was returned more than once", k)
	}
	return i, nil
}

// hideTimeout applies spec §4.4 rule 4: if the server reports
// REQUEST_TIMED_OUT for an element and the caller's operation_timeout is
// <= 0, the element's error is rewritten to success.
func hideTimeout(code int16, operationTimeout int64) int16 {
	const requestTimedOut = 7 // kerr.RequestTimedOut.Code
	if code == requestTimedOut && operationTimeout <= 0 {
		return 0
	}
	return code
}

// errMsgFor applies spec §4.4 rule 5: substitute a canonical message
// when the wire response's message is empty.
func errMsgFor(code int16, wireMsg *string) string {
	if wireMsg != nil && *wireMsg != "" {
		return *wireMsg
	}
	return canonicalMessage(code)
}
