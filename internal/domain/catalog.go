package domain

import "time"

type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type Specialty struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	ServiceID int64  `json:"id_servicio"`
}

// Referral is a cross-provider redirection rule ("deriva"): the owning
// provider forwards the destination service/specialty to another provider.
type Referral struct {
	ID              int64 `json:"id"`
	Quota           bool  `json:"cupo"`
	ProviderID      int64 `json:"id_efector"`
	DestProviderID  int64 `json:"id_efector_deriva"`
	DestServiceID   int64 `json:"id_servicio_deriva"`
	DestSpecialtyID int64 `json:"id_especialidad_deriva"`
}

type Template struct {
	ID      int64  `json:"id"`
	TypeID  int64  `json:"id_tipo"`
	Content string `json:"contenido"`
}

// Catalog is the immutable master-data snapshot loaded at startup. It is
// only ever replaced wholesale, never mutated in place.
type Catalog struct {
	Providers   []Provider  `json:"efectores"`
	Services    []Service   `json:"servicios"`
	Specialties []Specialty `json:"especialidades"`
	LoadedAt    time.Time   `json:"loaded_at"`
}

func (c *Catalog) ProviderIDs() []int64 {
	ids := make([]int64, 0, len(c.Providers))
	for _, p := range c.Providers {
		ids = append(ids, p.ID)
	}
	return ids
}

func (c *Catalog) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(c.Services))
	for _, s := range c.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

func (c *Catalog) SpecialtyIDs() []int64 {
	ids := make([]int64, 0, len(c.Specialties))
	for _, s := range c.Specialties {
		ids = append(ids, s.ID)
	}
	return ids
}

// CountSummary is the aggregate returned by the upstream turnos/count
// endpoint for the current selection.
type CountSummary struct {
	Total         int64 `json:"count"`
	Confirmations int64 `json:"msj_confirmacion"`
	Reschedules   int64 `json:"msj_reprogramacion"`
	Cancellations int64 `json:"msj_cancelacion"`
	Reminders     int64 `json:"msj_recordatorio"`
}
