package kadmin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSeedBrokers_StoredAndReadBack(t *testing.T) {
	cl, _, _ := newTestClient(t)
	require.Nil(t, cl.SeedBrokers())

	cl2 := NewClient(NewClusterView(), WithSeedBrokers("a:9092", "b:9092"))
	defer cl2.Close()
	require.Equal(t, []string{"a:9092", "b:9092"}, cl2.SeedBrokers())
}

func TestWithSeedBrokers_SnapshotIsIndependent(t *testing.T) {
	seeds := []string{"a:9092", "b:9092"}
	cl := NewClient(NewClusterView(), WithSeedBrokers(seeds...))
	defer cl.Close()

	seeds[0] = "mutated:9092"
	require.Equal(t, "a:9092", cl.SeedBrokers()[0])
}
