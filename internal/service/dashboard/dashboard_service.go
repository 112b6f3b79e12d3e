package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/logger"
	"github.com/ougirez/turnero/internal/pkg/metrics"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"github.com/ougirez/turnero/internal/service/bulk"
	"github.com/ougirez/turnero/internal/service/combos"
	"github.com/ougirez/turnero/internal/service/counts"
	"github.com/ougirez/turnero/internal/service/relation"
	"golang.org/x/sync/errgroup"
)

// Service owns the catalog snapshot, the availability index and the session
// registry, and exposes the dashboard entry points.
type Service struct {
	upstream upstream.Client
	metrics  *metrics.EngineMetrics

	mu       sync.RWMutex
	catalog  *domain.Catalog
	index    *relation.Index
	sessions map[string]*Session
}

func NewDashboardService(client upstream.Client, m *metrics.EngineMetrics) *Service {
	return &Service{
		upstream: client,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// LoadCatalog fetches the master lists and the full relation concurrently
// and swaps in a fresh snapshot and index. Referral rows are fetched per
// provider and are non-fatal: a provider whose referrals cannot be loaded
// simply contributes none to the index.
func (s *Service) LoadCatalog(ctx context.Context) error {
	var (
		providers   []domain.Provider
		services    []domain.Service
		specialties []domain.Specialty
		assocs      []domain.Association
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		providers, err = s.upstream.Providers(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		services, err = s.upstream.Services(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		specialties, err = s.upstream.Specialties(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		assocs, err = s.upstream.AllAssociations(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var (
		refMu     sync.Mutex
		referrals []domain.Referral
	)
	refGroup := errgroup.Group{}
	for _, p := range providers {
		p := p
		refGroup.Go(func() error {
			rows, err := s.upstream.Referrals(ctx, p.ID)
			if err != nil {
				logger.Warnf(ctx, "referrals for efector %d: %s", p.ID, err.Error())
				return nil
			}
			refMu.Lock()
			referrals = append(referrals, rows...)
			refMu.Unlock()
			return nil
		})
	}
	_ = refGroup.Wait()

	catalog := &domain.Catalog{
		Providers:   providers,
		Services:    services,
		Specialties: specialties,
		LoadedAt:    nowUTC(),
	}
	index := relation.NewIndex(assocs, referrals)

	s.mu.Lock()
	s.catalog = catalog
	s.index = index
	s.mu.Unlock()

	logger.Infof(ctx, "catalog loaded: %d efectores, %d servicios, %d especialidades, %d combinations",
		len(providers), len(services), len(specialties), index.Len())
	return nil
}

func (s *Service) snapshot() (*domain.Catalog, *relation.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.index
}

func (s *Service) Catalog() *domain.Catalog {
	cat, _ := s.snapshot()
	return cat
}

// CreateSession registers a new dashboard session with an unrestricted
// selection and an empty combination cache.
func (s *Service) CreateSession() *Session {
	cache := combos.NewCache()
	sess := &Session{
		ID:         uuid.NewString(),
		selection:  relation.NewSelection(),
		cache:      cache,
		combos:     combos.NewCoordinator(cache, s.upstream, s.metrics),
		bulk:       bulk.NewEngine(cache, s.upstream, s.metrics),
		aggregator: counts.NewAggregator(s.upstream, s.metrics),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, constants.ErrSessionNotFound
	}
	return sess, nil
}

// SelectionChange applies a new id set for one dimension, re-resolves
// availability with the closure rule, and refreshes the count aggregate.
// A failed aggregate does not fail the selection change; the counts come
// back zeroed with a flag for the caller to surface.
func (s *Service) SelectionChange(ctx context.Context, sessionID string, dim relation.Dimension, ids []int64) (*SelectionView, error) {
	if !dim.Valid() {
		return nil, constants.ErrUnknownDimension
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	cat, index := s.snapshot()

	sess.mu.Lock()
	sel, av := relation.ResolveClosed(sess.selection.With(dim, ids), index, cat)
	sess.selection = sel
	sess.mu.Unlock()

	view := &SelectionView{
		Selection:    newSelectionDTO(sel),
		Availability: newAvailabilityDTO(av),
	}

	summary, err := sess.aggregator.Refresh(ctx, sel)
	if err != nil {
		logger.Warnf(ctx, "refresh counts: %s", err.Error())
		view.CountsUnavailable = true
	}
	view.Counts = summary

	return view, nil
}

// RequestCombination loads the cross product of the given providers and
// services through the coordinator and replaces the session's visible list
// with the result. Failed pairs are reported, not fatal.
func (s *Service) RequestCombination(ctx context.Context, sessionID string, providerIDs, serviceIDs []int64) (*CombinationView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	pairs := make([]combos.Pair, 0, len(providerIDs)*len(serviceIDs))
	for _, pid := range providerIDs {
		for _, sid := range serviceIDs {
			pairs = append(pairs, combos.Pair{ProviderID: pid, ServiceID: sid})
		}
	}

	result := sess.combos.Ensure(ctx, pairs)

	sess.mu.Lock()
	sess.visible = result.Rows
	sess.mu.Unlock()

	view := &CombinationView{
		Rows:   result.Rows,
		Failed: result.Failed,
	}
	if view.Rows == nil {
		view.Rows = []domain.Association{}
	}
	if len(result.Failed) > 0 {
		view.Warning = fmt.Sprintf("%d combinations could not be loaded", len(result.Failed))
	}
	return view, nil
}

// BulkToggle runs the mutation engine over the session's visible rows, or
// over the subset named by targetIDs when given (the single-row case).
func (s *Service) BulkToggle(ctx context.Context, sessionID string, flag domain.Flag, value int, targetIDs []int64, opts bulk.Options) (*bulk.Report, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	targets := sess.visibleRows()
	sess.mu.Unlock()

	if len(targetIDs) > 0 {
		wanted := relation.NewIDSet(targetIDs...)
		filtered := targets[:0]
		for _, row := range targets {
			if wanted.Has(row.ID) {
				filtered = append(filtered, row)
			}
		}
		targets = filtered
	}

	report, err := sess.bulk.ApplyToAll(ctx, targets, flag, value, opts)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.applyUpdated(report.Updated)
	sess.mu.Unlock()

	return report, nil
}

// Counts returns the freshest aggregate snapshot the session has applied.
func (s *Service) Counts(sessionID string) (domain.CountSummary, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return domain.CountSummary{}, err
	}
	return sess.aggregator.Latest(), nil
}

func (s *Service) Referrals(ctx context.Context, providerID int64) ([]domain.Referral, error) {
	rows, err := s.upstream.Referrals(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("upstream.Referrals: %w", err)
	}
	return rows, nil
}

func (s *Service) Templates(ctx context.Context, typeID int64) ([]domain.Template, error) {
	rows, err := s.upstream.Templates(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("upstream.Templates: %w", err)
	}
	return rows, nil
}
