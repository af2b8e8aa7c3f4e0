package kadmin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOneShotTrigger_FireOnce(t *testing.T) {
	item := &RequestItem{}
	target := make(chan *RequestItem, 1)
	tr := NewOneShotTrigger(item, target)

	tr.AddSource("a")
	tr.AddSource("b")

	require.True(t, tr.Fire(nil))
	require.False(t, tr.Fire(nil), "second fire in the same arming must lose")

	got := <-target
	require.Same(t, item, got)
}

func TestOneShotTrigger_DisableClaimsItem(t *testing.T) {
	item := &RequestItem{}
	target := make(chan *RequestItem, 1)
	tr := NewOneShotTrigger(item, target)

	won := tr.Disable()
	require.Same(t, item, won)

	require.False(t, tr.Fire(nil), "fire after disable must lose")
	require.Nil(t, tr.Disable(), "second disable must return nil")
}

func TestOneShotTrigger_ReenableStartsNewArming(t *testing.T) {
	item := &RequestItem{}
	target := make(chan *RequestItem, 2)
	tr := NewOneShotTrigger(item, target)

	require.True(t, tr.Fire(nil))
	<-target

	tr.Reenable(item, target)
	require.True(t, tr.Fire(nil))
	<-target
}

func TestOneShotTrigger_SourceAccounting(t *testing.T) {
	item := &RequestItem{}
	target := make(chan *RequestItem, 1)
	tr := NewOneShotTrigger(item, target)

	tr.AddSource("timeout timer")
	require.True(t, tr.HasSource("timeout timer"))
	require.Equal(t, 1, tr.sourceCount())

	tr.AddSource("timeout timer")
	require.Equal(t, 1, tr.sourceCount(), "sourceCount counts distinct sources, AddSource increments a per-name counter")

	tr.DelSource("timeout timer")
	require.True(t, tr.HasSource("timeout timer"), "one outstanding reference remains")
	tr.DelSource("timeout timer")
	require.False(t, tr.HasSource("timeout timer"))

	tr.DelSource("never added")
}

// TestOneShotTrigger_ConcurrentFireRace is the race/fire-count stress
// scenario: many goroutines race to fire the same arming and exactly one
// must win, regardless of scheduling order.
func TestOneShotTrigger_ConcurrentFireRace(t *testing.T) {
	const racers = 64
	const rounds = 200

	item := &RequestItem{}
	target := make(chan *RequestItem, 1)
	tr := NewOneShotTrigger(item, target)

	for round := 0; round < rounds; round++ {
		tr.Reenable(item, target)

		var wins int32
		var mu sync.Mutex
		var wg sync.WaitGroup
		wg.Add(racers)
		for i := 0; i < racers; i++ {
			go func() {
				defer wg.Done()
				if tr.Fire(nil) {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), wins, "exactly one racer must win each arming")
		<-target
	}
}
