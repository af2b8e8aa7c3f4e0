package kadmin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_FormatsWithAndWithoutState(t *testing.T) {
	e := newErr(KindTimedOut, "deadline exceeded")
	require.Equal(t, "TIMED_OUT: deadline exceeded", e.Error())

	e.State = "waiting for broker"
	require.Equal(t, "TIMED_OUT: deadline exceeded (state: waiting for broker)", e.Error())
}

func TestCanonicalMessage(t *testing.T) {
	require.Equal(t, "", canonicalMessage(0))
	require.NotEmpty(t, canonicalMessage(3)) // UNKNOWN_TOPIC_OR_PARTITION
	require.Contains(t, canonicalMessage(12345), "unknown error code")
}
