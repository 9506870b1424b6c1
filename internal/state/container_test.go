package state

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

func TestContainerInitialStateIsIdle(t *testing.T) {
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		return "", nil
	}, nil)

	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.HasPayload)
	assert.Empty(t, snap.Err)
}

func TestFetchStoresPayloadWholesale(t *testing.T) {
	calls := 0
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		calls++
		return fmt.Sprintf("payload-%d", calls), nil
	}, nil)

	c.Fetch(context.Background())
	snap := c.Snapshot()
	require.Equal(t, PhaseSuccess, snap.Phase)
	assert.Equal(t, "payload-1", snap.Payload)

	// A second fetch fully replaces the prior payload
	c.Fetch(context.Background())
	assert.Equal(t, "payload-2", c.Snapshot().Payload)
	assert.Equal(t, 2, calls)
}

func TestFetchFailureStoresMessage(t *testing.T) {
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		return "", fmt.Errorf("server returned 503")
	}, nil)

	c.Fetch(context.Background())
	snap := c.Snapshot()
	assert.Equal(t, PhaseError, snap.Phase)
	assert.Contains(t, snap.Err, "server returned 503")
	assert.False(t, snap.HasPayload)

	c.ClearError()
	snap = c.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Equal(t, PhaseIdle, snap.Phase, "no payload yet, so clearing the error returns to idle")
}

func TestErrorIsReentrantIntoLoading(t *testing.T) {
	fail := true
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		if fail {
			return "", fmt.Errorf("boom")
		}
		return "ok", nil
	}, nil)

	c.Fetch(context.Background())
	require.Equal(t, PhaseError, c.Snapshot().Phase)

	fail = false
	c.Fetch(context.Background())
	snap := c.Snapshot()
	assert.Equal(t, PhaseSuccess, snap.Phase)
	assert.Empty(t, snap.Err, "a new fetch clears the stored error")
	assert.Equal(t, "ok", snap.Payload)
}

func TestSetFilterFetchesWithUpdatedValue(t *testing.T) {
	var mu sync.Mutex
	var seen []api.Filters
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		mu.Lock()
		seen = append(seen, f)
		mu.Unlock()
		return "ok", nil
	}, nil)

	c.SetFilter(context.Background(), FieldPeriod, "weekly")
	c.SetFilter(context.Background(), FieldTeam, "team-7")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2, "each SetFilter triggers exactly one fetch")
	assert.Equal(t, api.PeriodWeekly, seen[0].Period)
	// The second fetch carries both the earlier period and the new team
	assert.Equal(t, api.PeriodWeekly, seen[1].Period)
	assert.Equal(t, "team-7", seen[1].TeamID)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		started <- struct{}{}
		if f.TeamID == "old" {
			select {
			case <-release:
			case <-ctx.Done():
				return "", ctx.Err()
			}
			return "stale payload", nil
		}
		return "fresh payload", nil
	}, nil)

	c.SetFilters(api.Filters{TeamID: "old"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Fetch(context.Background())
	}()
	<-started

	// A newer fetch supersedes the in-flight one
	c.SetFilter(context.Background(), FieldTeam, "new")
	close(release)
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, "fresh payload", snap.Payload,
		"the slow response for superseded filters must never overwrite the newer one")
	assert.Equal(t, PhaseSuccess, snap.Phase)
}

func TestSupersededRequestContextIsCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	var calls atomic.Int32
	c := NewContainer("test", func(ctx context.Context, f api.Filters) (string, error) {
		if calls.Add(1) == 1 {
			go func() {
				<-ctx.Done()
				close(cancelled)
			}()
			// Block until superseded
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "second", nil
	}, nil)

	go c.Fetch(context.Background())
	time.Sleep(10 * time.Millisecond)
	c.Fetch(context.Background())

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded request context was never cancelled")
	}
	assert.Equal(t, "second", c.Snapshot().Payload)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "error", PhaseError.String())
}
