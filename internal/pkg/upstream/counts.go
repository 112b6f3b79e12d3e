package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ougirez/turnero/internal/domain"
)

// AppointmentCount queries turnos/count. Unrestricted dimensions are left
// out of the query string so the backend applies its own defaults.
func (c *client) AppointmentCount(ctx context.Context, q CountQuery) (domain.CountSummary, error) {
	query := url.Values{}
	if len(q.ServiceIDs) > 0 {
		query.Set("id_servicio", csv(q.ServiceIDs))
	}
	if len(q.SpecialtyIDs) > 0 {
		query.Set("id_especialidad", csv(q.SpecialtyIDs))
	}
	if len(q.ProviderIDs) > 0 {
		query.Set("efectores", csv(q.ProviderIDs))
	}
	if q.StatusID != nil {
		query.Set("id_estado", strconv.FormatInt(*q.StatusID, 10))
	}

	var out domain.CountSummary
	if err := c.getJSON(ctx, "turnos/count/", query, &out); err != nil {
		return domain.CountSummary{}, fmt.Errorf("turnos/count: %w", err)
	}
	return out, nil
}
