package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/domain/dto"
)

func (c *client) Associations(ctx context.Context, providerID, serviceID int64) ([]domain.Association, error) {
	query := url.Values{}
	query.Set("id_efector", strconv.FormatInt(providerID, 10))
	query.Set("id_servicio", strconv.FormatInt(serviceID, 10))

	var rows []dto.Association
	if err := c.getJSON(ctx, "efector_plantilla/detalle/", query, &rows); err != nil {
		return nil, fmt.Errorf("efector_plantilla/detalle: %w", err)
	}

	out := make([]domain.Association, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// AllAssociations lists the whole relation; it seeds the availability index
// at startup.
func (c *client) AllAssociations(ctx context.Context) ([]domain.Association, error) {
	var rows []dto.Association
	if err := c.getJSON(ctx, "efector_plantilla/buscar/", nil, &rows); err != nil {
		return nil, fmt.Errorf("efector_plantilla/buscar: %w", err)
	}

	out := make([]domain.Association, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

func (c *client) UpdateAssociation(ctx context.Context, id int64, patch map[string]interface{}) (domain.Association, error) {
	var row dto.Association
	path := fmt.Sprintf("efector_plantilla/%d/", id)
	if err := c.patchJSON(ctx, path, patch, &row); err != nil {
		return domain.Association{}, fmt.Errorf("efector_plantilla/%d: %w", id, err)
	}
	return row.ToDomain(), nil
}
