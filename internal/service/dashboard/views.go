package dashboard

import (
	"time"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/service/combos"
	"github.com/ougirez/turnero/internal/service/relation"
)

type SelectionDTO struct {
	Providers   []int64 `json:"efectores"`
	Services    []int64 `json:"servicios"`
	Specialties []int64 `json:"especialidades"`
}

func newSelectionDTO(sel relation.Selection) SelectionDTO {
	return SelectionDTO{
		Providers:   sel.Providers.IDs(),
		Services:    sel.Services.IDs(),
		Specialties: sel.Specialties.IDs(),
	}
}

func newAvailabilityDTO(av relation.Availability) SelectionDTO {
	return SelectionDTO{
		Providers:   av.Providers.IDs(),
		Services:    av.Services.IDs(),
		Specialties: av.Specialties.IDs(),
	}
}

type SelectionView struct {
	Selection         SelectionDTO        `json:"selection"`
	Availability      SelectionDTO        `json:"availability"`
	Counts            domain.CountSummary `json:"counts"`
	CountsUnavailable bool                `json:"counts_unavailable,omitempty"`
}

type CombinationView struct {
	Rows    []domain.Association `json:"rows"`
	Failed  []combos.Pair        `json:"failed_combinations,omitempty"`
	Warning string               `json:"warning,omitempty"`
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
