package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/ougirez/turnero/internal/domain"
)

// CountQuery carries the selection sets for the appointment-count endpoint.
// An empty slice means the dimension is unrestricted and the parameter is
// omitted from the request entirely.
type CountQuery struct {
	ServiceIDs   []int64
	SpecialtyIDs []int64
	ProviderIDs  []int64
	StatusID     *int64
}

// Client is the REST boundary to the turnero backend. Everything the
// dashboard core knows about the outside world goes through it.
type Client interface {
	Providers(ctx context.Context) ([]domain.Provider, error)
	Services(ctx context.Context) ([]domain.Service, error)
	Specialties(ctx context.Context) ([]domain.Specialty, error)
	Referrals(ctx context.Context, providerID int64) ([]domain.Referral, error)
	Templates(ctx context.Context, typeID int64) ([]domain.Template, error)
	Associations(ctx context.Context, providerID, serviceID int64) ([]domain.Association, error)
	AllAssociations(ctx context.Context) ([]domain.Association, error)
	UpdateAssociation(ctx context.Context, id int64, patch map[string]interface{}) (domain.Association, error)
	AppointmentCount(ctx context.Context, q CountQuery) (domain.CountSummary, error)
}

type client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}
