package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw6ventures/stravaview/internal/activity"
)

func view(id int64) activity.View {
	return activity.View{ID: id, Name: fmt.Sprintf("Run %d", id), Pace: "9:30"}
}

func TestPutGetFind(t *testing.T) {
	c := New()
	a, b := view(1), view(2)

	c.Put(42, []activity.View{a, b})

	got, ok := c.Get(42)
	require.True(t, ok)
	assert.Equal(t, []activity.View{a, b}, got)

	found, res := c.Find(42, b.ID)
	assert.Equal(t, Found, res)
	assert.Equal(t, b, found)

	_, res = c.Find(42, 999)
	assert.Equal(t, NoActivity, res)

	_, ok = c.Get(7)
	assert.False(t, ok)
	_, res = c.Find(7, a.ID)
	assert.Equal(t, NoEntry, res)
}

func TestPutOverwrites(t *testing.T) {
	c := New()
	c.Put(42, []activity.View{view(1), view(2)})
	c.Put(42, []activity.View{view(3)})

	got, ok := c.Get(42)
	require.True(t, ok)
	assert.Equal(t, []activity.View{view(3)}, got)
	_, res := c.Find(42, 1)
	assert.Equal(t, NoActivity, res)
	assert.Equal(t, 1, c.Len())
}

func TestPutEmptyListIsAnEntry(t *testing.T) {
	c := New()
	c.Put(42, nil)

	got, ok := c.Get(42)
	assert.True(t, ok)
	assert.Empty(t, got)
	_, res := c.Find(42, 1)
	assert.Equal(t, NoActivity, res)
}

func TestFindReturnsFirstMatch(t *testing.T) {
	c := New()
	first := view(5)
	dup := view(5)
	dup.Name = "duplicate"
	c.Put(1, []activity.View{first, dup})

	got, res := c.Find(1, 5)
	assert.Equal(t, Found, res)
	assert.Equal(t, "Run 5", got.Name)
}

func TestCallerCannotMutateEntry(t *testing.T) {
	c := New()
	in := []activity.View{view(1)}
	c.Put(42, in)
	in[0].Name = "changed after put"

	out, _ := c.Get(42)
	out[0].Name = "changed after get"

	again, _ := c.Get(42)
	assert.Equal(t, "Run 1", again[0].Name)
}

func TestConcurrentReadersSeeWholeLists(t *testing.T) {
	c := New()
	small := []activity.View{view(1)}
	large := []activity.View{view(1), view(2), view(3), view(4), view(5)}
	c.Put(42, small)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					c.Put(42, large)
				} else {
					c.Put(42, small)
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, ok := c.Get(42)
				if !ok || (len(got) != len(small) && len(got) != len(large)) {
					t.Errorf("observed partial list of length %d", len(got))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func cachedAthletesGauge(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "stravaview_cached_athletes" {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("stravaview_cached_athletes not registered")
	return 0
}

func TestCachedAthletesGaugeMatchesLenAfterConcurrentPuts(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 1; i <= 200; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c.Put(id, []activity.View{{ID: id}})
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 200, c.Len())
	assert.Equal(t, float64(200), cachedAthletesGauge(t))
}
