package combos

import (
	"context"
	"sync"
	"testing"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream serves association rows from a fixed map and counts calls.
type fakeUpstream struct {
	upstream.Client

	mu    sync.Mutex
	rows  map[Pair][]domain.Association
	fail  map[Pair]bool
	calls map[Pair]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		rows:  make(map[Pair][]domain.Association),
		fail:  make(map[Pair]bool),
		calls: make(map[Pair]int),
	}
}

func (f *fakeUpstream) Associations(_ context.Context, providerID, serviceID int64) ([]domain.Association, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := Pair{ProviderID: providerID, ServiceID: serviceID}
	f.calls[p]++
	if f.fail[p] {
		return nil, constants.ErrUpstream
	}
	return f.rows[p], nil
}

func (f *fakeUpstream) callCount(p Pair) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[p]
}

func row(id, providerID, serviceID, specialtyID int64) domain.Association {
	return domain.Association{ID: id, ProviderID: providerID, ServiceID: serviceID, SpecialtyID: specialtyID}
}

func TestEnsureFetchesOnlyMissingPairs(t *testing.T) {
	up := newFakeUpstream()
	p1 := Pair{ProviderID: 1, ServiceID: 10}
	p2 := Pair{ProviderID: 2, ServiceID: 10}
	up.rows[p1] = []domain.Association{row(1, 1, 10, 100)}
	up.rows[p2] = []domain.Association{row(2, 2, 10, 100)}

	cache := NewCache()
	coord := NewCoordinator(cache, up, nil)

	result := coord.Ensure(context.Background(), []Pair{p1})
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 1, up.callCount(p1))

	result = coord.Ensure(context.Background(), []Pair{p1, p2})
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 1, up.callCount(p1), "cached pair must not be refetched")
	assert.Equal(t, 1, up.callCount(p2))
}

func TestEnsureEmptyFetchIsCached(t *testing.T) {
	up := newFakeUpstream()
	p := Pair{ProviderID: 1, ServiceID: 10}
	// pair exists upstream but has no rows

	cache := NewCache()
	coord := NewCoordinator(cache, up, nil)

	result := coord.Ensure(context.Background(), []Pair{p})
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Failed)

	coord.Ensure(context.Background(), []Pair{p})
	assert.Equal(t, 1, up.callCount(p), "an empty result is still a cached result")
}

func TestEnsurePartialFailure(t *testing.T) {
	up := newFakeUpstream()
	good := Pair{ProviderID: 1, ServiceID: 10}
	bad := Pair{ProviderID: 2, ServiceID: 10}
	up.rows[good] = []domain.Association{row(1, 1, 10, 100)}
	up.fail[bad] = true

	cache := NewCache()
	coord := NewCoordinator(cache, up, nil)

	result := coord.Ensure(context.Background(), []Pair{good, bad})
	assert.Len(t, result.Rows, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, bad, result.Failed[0])

	// a failed pair stays absent and is retried next call
	up.mu.Lock()
	up.fail[bad] = false
	up.rows[bad] = []domain.Association{row(2, 2, 10, 100)}
	up.mu.Unlock()

	result = coord.Ensure(context.Background(), []Pair{good, bad})
	assert.Len(t, result.Rows, 2)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, up.callCount(bad))
}

func TestEnsureUnionDeduplicatesByRowID(t *testing.T) {
	up := newFakeUpstream()
	p1 := Pair{ProviderID: 1, ServiceID: 10}
	p2 := Pair{ProviderID: 1, ServiceID: 11}
	shared := row(5, 1, 10, 100)
	up.rows[p1] = []domain.Association{shared, row(6, 1, 10, 101)}
	up.rows[p2] = []domain.Association{shared}

	coord := NewCoordinator(NewCache(), up, nil)

	result := coord.Ensure(context.Background(), []Pair{p1, p2, p1})
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, 1, up.callCount(p1), "duplicate request pairs collapse")
}

func TestCacheUpdateRow(t *testing.T) {
	cache := NewCache()
	p := Pair{ProviderID: 1, ServiceID: 10}

	orphan := row(9, 3, 12, 102)
	assert.False(t, cache.UpdateRow(orphan), "unfetched pair is ignored")

	original := row(1, 1, 10, 100)
	cache.Put(p, []domain.Association{original})

	held, ok := cache.Get(p)
	require.True(t, ok)

	changed := original
	changed.Confirmation = 1
	require.True(t, cache.UpdateRow(changed))

	// the slice handed out before the update must not have been mutated
	assert.Equal(t, 0, held[0].Confirmation)

	fresh, ok := cache.Get(p)
	require.True(t, ok)
	assert.Equal(t, 1, fresh[0].Confirmation)
}
