package kadmin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestResultEvent_AccessorsAreNilSafeForRequestLevelFailure(t *testing.T) {
	evt := &ResultEvent{Type: KindCreateTopics, Err: newErr(KindTimedOut, "x")}

	if got := evt.Topics(); got != nil {
		t.Errorf("Topics() on a request-level failure = %v, want nil", got)
	}
	if got := evt.Partitions(); got != nil {
		t.Errorf("Partitions() on a request-level failure = %v, want nil", got)
	}
	if got := evt.Resources(); got != nil {
		t.Errorf("Resources() on a request-level failure = %v, want nil", got)
	}
}

func TestResultEvent_TopicsMatchesReorderedSlots(t *testing.T) {
	item := &ResultItem{
		Topics: []TopicResult{
			{Topic: "A", ErrCode: 36},
			{Topic: "B", ErrCode: 0},
			{Topic: "C", ErrCode: 0},
		},
	}
	evt := &ResultEvent{item: item}

	want := []TopicResult{
		{Topic: "A", ErrCode: 36},
		{Topic: "B", ErrCode: 0},
		{Topic: "C", ErrCode: 0},
	}
	if diff := cmp.Diff(want, evt.Topics(), cmpopts.IgnoreFields(TopicResult{}, "Err", "ErrMsg")); diff != "" {
		t.Errorf("Topics() mismatch (-want +got):\n%s", diff)
	}
}
