package period

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigation(t *testing.T) {
	t.Run("two next from mid-January lands in March", func(t *testing.T) {
		s := NewSelectorAt(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local))
		s.Next()
		s.Next()
		assert.Equal(t, 2024, s.Year())
		assert.Equal(t, 3, s.Month())
	})

	t.Run("previous from March lands in February", func(t *testing.T) {
		s := NewSelectorAt(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local))
		s.Previous()
		assert.Equal(t, 2024, s.Year())
		assert.Equal(t, 2, s.Month())
	})

	t.Run("previous across a year boundary", func(t *testing.T) {
		s := NewSelectorAt(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local))
		s.Previous()
		assert.Equal(t, 2023, s.Year())
		assert.Equal(t, 12, s.Month())
	})

	t.Run("day clamps instead of rolling over", func(t *testing.T) {
		// Jan 31 -> Feb 29 (2024 is a leap year), never March.
		s := NewSelectorAt(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local))
		s.Next()
		assert.Equal(t, 2, s.Month())
		assert.Equal(t, 29, s.Current().Day())

		s.Next()
		assert.Equal(t, 3, s.Month())
	})
}

func TestSetExplicit(t *testing.T) {
	s := NewSelector()

	require.NoError(t, s.SetExplicit("2024-03-10"))
	assert.Equal(t, 2024, s.Year())
	assert.Equal(t, 3, s.Month())
	// The classic regression: parsing "2024-03-10" as UTC and reading
	// it back in a western timezone yields March 9.
	assert.Equal(t, 10, s.Current().Day())
	assert.Equal(t, time.Local, s.Current().Location())

	t.Run("rejects malformed input", func(t *testing.T) {
		assert.Error(t, s.SetExplicit("10/03/2024"))
		assert.Error(t, s.SetExplicit("2024-13-01"))
		assert.Error(t, s.SetExplicit(""))
	})

	t.Run("rejects impossible dates instead of normalizing", func(t *testing.T) {
		require.NoError(t, s.SetExplicit("2024-02-15"))

		// Feb 31 must not silently become March 2.
		assert.Error(t, s.SetExplicit("2024-02-31"))
		assert.Error(t, s.SetExplicit("2023-02-29"))
		assert.Equal(t, 2, s.Month(), "failed set leaves the view unchanged")
	})

	t.Run("rejects trailing garbage", func(t *testing.T) {
		assert.Error(t, s.SetExplicit("2024-03-10xyz"))
	})
}

func TestNavigationFromConcurrentGoroutines(t *testing.T) {
	// Month shifts arrive from goroutines the dashboard spawns, one
	// per keypress, while the render path reads the selector.
	s := NewSelectorAt(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local))

	const shiftsPerWriter = 6
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < shiftsPerWriter; j++ {
				s.Next()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = s.Current()
			_ = s.Month()
		}
	}()

	wg.Wait()
	<-done

	// Every shift lands exactly once: twelve months forward in total.
	assert.Equal(t, 2025, s.Year())
	assert.Equal(t, 1, s.Month())
}

func TestGoToToday(t *testing.T) {
	s := NewSelectorAt(time.Date(1999, time.June, 1, 0, 0, 0, 0, time.Local))
	s.GoToToday()

	now := time.Now()
	assert.Equal(t, now.Year(), s.Year())
	assert.Equal(t, int(now.Month()), s.Month())
}

func TestSubscribersNotifiedOnEveryMutation(t *testing.T) {
	s := NewSelectorAt(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local))

	calls := 0
	s.Subscribe(func() { calls++ })

	s.Next()
	s.Previous()
	s.GoToToday()
	require.NoError(t, s.SetExplicit("2024-05-01"))

	assert.Equal(t, 4, calls)
}
