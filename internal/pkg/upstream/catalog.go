package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/domain/dto"
)

func (c *client) Providers(ctx context.Context) ([]domain.Provider, error) {
	var out []domain.Provider
	if err := c.getJSON(ctx, "efectores/", nil, &out); err != nil {
		return nil, fmt.Errorf("efectores: %w", err)
	}
	return out, nil
}

func (c *client) Services(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.getJSON(ctx, "servicios/", nil, &out); err != nil {
		return nil, fmt.Errorf("servicios: %w", err)
	}
	return out, nil
}

func (c *client) Specialties(ctx context.Context) ([]domain.Specialty, error) {
	var out []domain.Specialty
	if err := c.getJSON(ctx, "especialidades/", nil, &out); err != nil {
		return nil, fmt.Errorf("especialidades: %w", err)
	}
	return out, nil
}

func (c *client) Referrals(ctx context.Context, providerID int64) ([]domain.Referral, error) {
	query := url.Values{}
	query.Set("id_efector", strconv.FormatInt(providerID, 10))

	var rows []dto.Referral
	if err := c.getJSON(ctx, "derivaciones/", query, &rows); err != nil {
		return nil, fmt.Errorf("derivaciones: %w", err)
	}

	out := make([]domain.Referral, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// Templates lists the plantilla catalog; typeID 0 lists every type.
func (c *client) Templates(ctx context.Context, typeID int64) ([]domain.Template, error) {
	var query url.Values
	if typeID != 0 {
		query = url.Values{}
		query.Set("id_tipo", strconv.FormatInt(typeID, 10))
	}

	var rows []dto.Template
	if err := c.getJSON(ctx, "plantilla/", query, &rows); err != nil {
		return nil, fmt.Errorf("plantilla: %w", err)
	}

	out := make([]domain.Template, 0, len(rows))
	for _, t := range rows {
		out = append(out, t.ToDomain())
	}
	return out, nil
}
