package kadmin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyDeleteTopics_IsIndependent(t *testing.T) {
	in := []DeleteTopic{{Topic: "a"}, {Topic: "b"}}
	out := copyDeleteTopics(in)

	in[0].Topic = "mutated"

	require.Equal(t, "a", out[0].Topic)
	require.Equal(t, "a", out[0].identifier())
}
