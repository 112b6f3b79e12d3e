package dto

import "github.com/ougirez/turnero/internal/domain"

type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Referral mirrors the upstream "deriva" row, which nests the owning
// provider and the destination provider/service/specialty.
type Referral struct {
	ID            int64     `json:"id"`
	Quota         int       `json:"cupo"`
	Provider      Provider  `json:"efector"`
	DestProvider  Provider  `json:"efector_deriva"`
	DestService   Service   `json:"servicio_deriva"`
	DestSpecialty Specialty `json:"especialidad_deriva"`
}

func (d Referral) ToDomain() domain.Referral {
	return domain.Referral{
		ID:              d.ID,
		Quota:           d.Quota == 1,
		ProviderID:      d.Provider.ID,
		DestProviderID:  d.DestProvider.ID,
		DestServiceID:   d.DestService.ID,
		DestSpecialtyID: d.DestSpecialty.ID,
	}
}
