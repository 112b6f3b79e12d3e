package dashboard

import (
	"context"
	"sync"
	"testing"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"github.com/ougirez/turnero/internal/service/bulk"
	"github.com/ougirez/turnero/internal/service/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ providerID, serviceID int64 }

// fakeBackend is a full in-memory stand-in for the turnero REST API.
type fakeBackend struct {
	mu           sync.Mutex
	providers    []domain.Provider
	services     []domain.Service
	specialties  []domain.Specialty
	referrals    map[int64][]domain.Referral
	associations map[pair][]domain.Association
	failPairs    map[pair]bool
	failPatchIDs map[int64]bool
	countSummary domain.CountSummary
	countCalls   int
}

var _ upstream.Client = (*fakeBackend)(nil)

func (f *fakeBackend) Providers(context.Context) ([]domain.Provider, error) {
	return f.providers, nil
}

func (f *fakeBackend) Services(context.Context) ([]domain.Service, error) {
	return f.services, nil
}

func (f *fakeBackend) Specialties(context.Context) ([]domain.Specialty, error) {
	return f.specialties, nil
}

func (f *fakeBackend) Referrals(_ context.Context, providerID int64) ([]domain.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.referrals[providerID], nil
}

func (f *fakeBackend) Templates(context.Context, int64) ([]domain.Template, error) {
	return []domain.Template{{ID: 7, TypeID: 1, Content: "su turno fue confirmado"}}, nil
}

func (f *fakeBackend) Associations(_ context.Context, providerID, serviceID int64) ([]domain.Association, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := pair{providerID, serviceID}
	if f.failPairs[p] {
		return nil, constants.ErrUpstream
	}
	return f.associations[p], nil
}

func (f *fakeBackend) AllAssociations(context.Context) ([]domain.Association, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []domain.Association
	for _, rows := range f.associations {
		all = append(all, rows...)
	}
	return all, nil
}

func (f *fakeBackend) UpdateAssociation(_ context.Context, id int64, _ map[string]interface{}) (domain.Association, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPatchIDs[id] {
		return domain.Association{}, constants.ErrUpstream
	}
	return domain.Association{ID: id}, nil
}

func (f *fakeBackend) AppointmentCount(context.Context, upstream.CountQuery) (domain.CountSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.countCalls++
	return f.countSummary, nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		providers: []domain.Provider{
			{ID: 1, Name: "Hospital Central"},
			{ID: 2, Name: "CAPS Norte"},
		},
		services: []domain.Service{
			{ID: 10, Name: "Clínica Médica"},
			{ID: 11, Name: "Pediatría"},
		},
		specialties: []domain.Specialty{
			{ID: 100, Name: "Cardiología", ServiceID: 10},
			{ID: 101, Name: "Neumonología", ServiceID: 10},
			{ID: 102, Name: "Neonatología", ServiceID: 11},
		},
		referrals: map[int64][]domain.Referral{},
		associations: map[pair][]domain.Association{
			{1, 10}: {
				{ID: 1, ProviderID: 1, ServiceID: 10, SpecialtyID: 100},
				{ID: 2, ProviderID: 1, ServiceID: 10, SpecialtyID: 101},
			},
			{1, 11}: {
				{ID: 3, ProviderID: 1, ServiceID: 11, SpecialtyID: 102},
			},
			{2, 10}: {
				{ID: 4, ProviderID: 2, ServiceID: 10, SpecialtyID: 100},
			},
		},
		failPairs:    map[pair]bool{},
		failPatchIDs: map[int64]bool{},
		countSummary: domain.CountSummary{Total: 20, Confirmations: 5},
	}
}

func newLoadedService(t *testing.T, backend *fakeBackend) *Service {
	t.Helper()
	svc := NewDashboardService(backend, nil)
	require.NoError(t, svc.LoadCatalog(context.Background()))
	return svc
}

func TestLoadCatalogBuildsSnapshot(t *testing.T) {
	backend := newFakeBackend()
	backend.referrals[2] = []domain.Referral{
		{ID: 7, ProviderID: 2, DestProviderID: 1, DestServiceID: 11, DestSpecialtyID: 102},
	}
	svc := newLoadedService(t, backend)

	cat := svc.Catalog()
	require.NotNil(t, cat)
	assert.Len(t, cat.Providers, 2)
	assert.Len(t, cat.Services, 2)
	assert.Len(t, cat.Specialties, 3)
	assert.False(t, cat.LoadedAt.IsZero())

	// the deriva row makes pediatría reachable under CAPS Norte
	sess := svc.CreateSession()
	view, err := svc.SelectionChange(context.Background(), sess.ID, relation.DimensionProvider, []int64{2})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, view.Availability.Services)
}

func TestSelectionChange(t *testing.T) {
	svc := newLoadedService(t, newFakeBackend())
	sess := svc.CreateSession()
	ctx := context.Background()

	view, err := svc.SelectionChange(ctx, sess.ID, relation.DimensionService, []int64{11})
	require.NoError(t, err)

	assert.Equal(t, []int64{11}, view.Selection.Services)
	assert.Equal(t, []int64{1}, view.Availability.Providers)
	assert.Equal(t, []int64{102}, view.Availability.Specialties)
	assert.Equal(t, int64(20), view.Counts.Total)
	assert.False(t, view.CountsUnavailable)

	// switching to service 10 must widen availability again
	view, err = svc.SelectionChange(ctx, sess.ID, relation.DimensionService, []int64{10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, view.Availability.Providers)

	// clearing the dimension restores the full master lists
	view, err = svc.SelectionChange(ctx, sess.ID, relation.DimensionService, nil)
	require.NoError(t, err)
	assert.Empty(t, view.Selection.Services)
	assert.Equal(t, []int64{1, 2}, view.Availability.Providers)
	assert.Equal(t, []int64{10, 11}, view.Availability.Services)
	assert.Equal(t, []int64{100, 101, 102}, view.Availability.Specialties)
}

func TestSelectionChangePrunesContradiction(t *testing.T) {
	svc := newLoadedService(t, newFakeBackend())
	sess := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.SelectionChange(ctx, sess.ID, relation.DimensionProvider, []int64{2})
	require.NoError(t, err)

	// specialty 102 is not offered by provider 2; the closure rule clears
	// the contradictory pair instead of leaving a dead-end selection
	view, err := svc.SelectionChange(ctx, sess.ID, relation.DimensionSpecialty, []int64{102})
	require.NoError(t, err)
	assert.Empty(t, view.Selection.Providers)
	assert.Empty(t, view.Selection.Specialties)
}

func TestSelectionChangeRejectsUnknownDimension(t *testing.T) {
	svc := newLoadedService(t, newFakeBackend())
	sess := svc.CreateSession()

	_, err := svc.SelectionChange(context.Background(), sess.ID, "turno", []int64{1})
	assert.ErrorIs(t, err, constants.ErrUnknownDimension)

	_, err = svc.SelectionChange(context.Background(), "no-such-session", relation.DimensionProvider, []int64{1})
	assert.ErrorIs(t, err, constants.ErrSessionNotFound)
}

func TestRequestCombination(t *testing.T) {
	backend := newFakeBackend()
	backend.failPairs[pair{2, 11}] = true
	svc := newLoadedService(t, backend)
	sess := svc.CreateSession()

	view, err := svc.RequestCombination(context.Background(), sess.ID, []int64{1, 2}, []int64{10, 11})
	require.NoError(t, err)

	// rows 1-4 load; (2,11) fails and is reported, not fatal
	assert.Len(t, view.Rows, 4)
	require.Len(t, view.Failed, 1)
	assert.Equal(t, int64(2), view.Failed[0].ProviderID)
	assert.Equal(t, int64(11), view.Failed[0].ServiceID)
	assert.Contains(t, view.Warning, "1 combinations")

	// narrowing replaces the visible list
	view, err = svc.RequestCombination(context.Background(), sess.ID, []int64{1}, []int64{10})
	require.NoError(t, err)
	assert.Len(t, view.Rows, 2)
	assert.Empty(t, view.Warning)
}

func TestBulkToggleOverVisibleRows(t *testing.T) {
	backend := newFakeBackend()
	svc := newLoadedService(t, backend)
	sess := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.RequestCombination(ctx, sess.ID, []int64{1}, []int64{10})
	require.NoError(t, err)

	tmpl := int64(7)
	report, err := svc.BulkToggle(ctx, sess.ID, domain.FlagConfirmation, 1, nil, bulk.Options{TemplateID: &tmpl})
	require.NoError(t, err)
	assert.Equal(t, bulk.OutcomeUpdated, report.Outcome)
	assert.Len(t, report.Updated, 2)

	// the refreshed visible list reflects the mutation
	view, err := svc.RequestCombination(ctx, sess.ID, []int64{1}, []int64{10})
	require.NoError(t, err)
	for _, row := range view.Rows {
		assert.Equal(t, 1, row.Confirmation)
		require.NotNil(t, row.ConfirmationTemplate)
		assert.Equal(t, tmpl, *row.ConfirmationTemplate)
	}
}

func TestBulkToggleSingleRowSubset(t *testing.T) {
	backend := newFakeBackend()
	svc := newLoadedService(t, backend)
	sess := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.RequestCombination(ctx, sess.ID, []int64{1}, []int64{10})
	require.NoError(t, err)

	tmpl := int64(7)
	report, err := svc.BulkToggle(ctx, sess.ID, domain.FlagCancellation, 1, []int64{2}, bulk.Options{TemplateID: &tmpl})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Attempted)
	require.Len(t, report.Updated, 1)
	assert.Equal(t, int64(2), report.Updated[0].ID)
}

func TestBulkToggleWithoutVisibleRows(t *testing.T) {
	svc := newLoadedService(t, newFakeBackend())
	sess := svc.CreateSession()

	tmpl := int64(7)
	_, err := svc.BulkToggle(context.Background(), sess.ID, domain.FlagConfirmation, 1, nil, bulk.Options{TemplateID: &tmpl})
	assert.ErrorIs(t, err, constants.ErrNoTargets)
}

func TestCountsReturnLatestSnapshot(t *testing.T) {
	backend := newFakeBackend()
	svc := newLoadedService(t, backend)
	sess := svc.CreateSession()

	summary, err := svc.Counts(sess.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Total, "no refresh has run yet")

	_, err = svc.SelectionChange(context.Background(), sess.ID, relation.DimensionProvider, []int64{1})
	require.NoError(t, err)

	summary, err = svc.Counts(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), summary.Total)
}

func TestSessionsAreIsolated(t *testing.T) {
	backend := newFakeBackend()
	svc := newLoadedService(t, backend)
	a := svc.CreateSession()
	b := svc.CreateSession()
	ctx := context.Background()

	require.NotEqual(t, a.ID, b.ID)

	_, err := svc.RequestCombination(ctx, a.ID, []int64{1}, []int64{10})
	require.NoError(t, err)

	tmpl := int64(7)
	_, err = svc.BulkToggle(ctx, b.ID, domain.FlagConfirmation, 1, nil, bulk.Options{TemplateID: &tmpl})
	assert.ErrorIs(t, err, constants.ErrNoTargets, "b never loaded combinations")
}
