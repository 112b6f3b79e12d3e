package counts

import (
	"context"
	"sync"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/metrics"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"github.com/ougirez/turnero/internal/service/relation"
)

// scheduled appointments; the upstream default status filter
const statusScheduled int64 = 0

// Aggregator holds the latest appointment-count snapshot for one session.
// Responses are applied in issuance order: a slow, superseded request's
// result is discarded on arrival instead of being cancelled in flight.
type Aggregator struct {
	upstream upstream.Client
	metrics  *metrics.EngineMetrics

	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  domain.CountSummary
}

func NewAggregator(client upstream.Client, m *metrics.EngineMetrics) *Aggregator {
	return &Aggregator{upstream: client, metrics: m}
}

// Refresh queries the aggregate for the selection and returns the freshest
// snapshot known after the response is accounted for. Empty dimensions are
// omitted from the upstream query. An aggregate failure resets the snapshot
// to zero rather than leaving a stale figure on screen.
func (a *Aggregator) Refresh(ctx context.Context, sel relation.Selection) (domain.CountSummary, error) {
	a.mu.Lock()
	a.issued++
	seq := a.issued
	a.mu.Unlock()

	status := statusScheduled
	q := upstream.CountQuery{
		ServiceIDs:   sel.Services.IDs(),
		SpecialtyIDs: sel.Specialties.IDs(),
		ProviderIDs:  sel.Providers.IDs(),
		StatusID:     &status,
	}

	summary, err := a.upstream.AppointmentCount(ctx, q)

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq <= a.applied {
		// a newer refresh already landed; this result is stale
		a.metrics.ObserveStaleDiscard()
		return a.latest, nil
	}
	a.applied = seq

	if err != nil {
		a.latest = domain.CountSummary{}
		return a.latest, err
	}
	a.latest = summary
	return a.latest, nil
}

func (a *Aggregator) Latest() domain.CountSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}
