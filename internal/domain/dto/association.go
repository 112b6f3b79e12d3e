package dto

import "github.com/ougirez/turnero/internal/domain"

type Template struct {
	ID      int64  `json:"id"`
	TypeID  int64  `json:"id_tipo"`
	Content string `json:"contenido"`
}

type Specialty struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	ServiceID int64  `json:"id_servicio"`
}

// Association is the extended efector_plantilla row as the upstream
// serializes it: the specialty and any assigned templates come nested.
type Association struct {
	ID          int64     `json:"id"`
	EfeSerEspID int64     `json:"id_efe_ser_esp"`
	ProviderID  int64     `json:"id_efector"`
	ServiceID   int64     `json:"id_servicio"`
	Specialty   Specialty `json:"especialidad"`

	Confirmation         int       `json:"confirmacion"`
	ConfirmationTemplate *Template `json:"plantilla_conf"`
	Reschedule           int       `json:"reprogramacion"`
	RescheduleTemplate   *Template `json:"plantilla_repr"`
	Cancellation         int       `json:"cancelacion"`
	CancellationTemplate *Template `json:"plantilla_canc"`
	Reminder             int       `json:"recordatorio"`
	ReminderTemplate     *Template `json:"plantilla_reco"`
	LeadDays             *int      `json:"dias_antes"`
}

func templateID(t *Template) *int64 {
	if t == nil {
		return nil
	}
	id := t.ID
	return &id
}

func (d Association) ToDomain() domain.Association {
	return domain.Association{
		ID:                   d.ID,
		ProviderID:           d.ProviderID,
		ServiceID:            d.ServiceID,
		SpecialtyID:          d.Specialty.ID,
		Confirmation:         d.Confirmation,
		ConfirmationTemplate: templateID(d.ConfirmationTemplate),
		Reschedule:           d.Reschedule,
		RescheduleTemplate:   templateID(d.RescheduleTemplate),
		Cancellation:         d.Cancellation,
		CancellationTemplate: templateID(d.CancellationTemplate),
		Reminder:             d.Reminder,
		ReminderTemplate:     templateID(d.ReminderTemplate),
		LeadDays:             d.LeadDays,
	}
}

func (d Template) ToDomain() domain.Template {
	return domain.Template{ID: d.ID, TypeID: d.TypeID, Content: d.Content}
}
