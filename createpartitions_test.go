package kadmin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPartitions_Validate(t *testing.T) {
	require.Error(t, NewPartitions{Topic: "", TotalCount: 1}.validate())
	require.Error(t, NewPartitions{Topic: "a", TotalCount: 0}.validate())
	require.NoError(t, NewPartitions{Topic: "a", TotalCount: 5}.validate())
}

func TestCopyNewPartitions_DeepCopiesReplicas(t *testing.T) {
	in := []NewPartitions{{Topic: "a", TotalCount: 2, Replicas: [][]int32{{1, 2}}}}
	out := copyNewPartitions(in)

	in[0].Replicas[0][0] = 42

	require.Equal(t, int32(1), out[0].Replicas[0][0])
}
