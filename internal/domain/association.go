package domain

// Flag names one of the four messaging toggles carried by an Association.
type Flag string

const (
	FlagConfirmation Flag = "confirmacion"
	FlagReschedule   Flag = "reprogramacion"
	FlagCancellation Flag = "cancelacion"
	FlagReminder     Flag = "recordatorio"
)

// Association is one row of the Provider x Service x Specialty relation
// ("efector_plantilla") with its per-combination messaging config.
// Flags are 0/1 on the wire; template references are nullable.
type Association struct {
	ID          int64 `json:"id"`
	ProviderID  int64 `json:"id_efector"`
	ServiceID   int64 `json:"id_servicio"`
	SpecialtyID int64 `json:"id_especialidad"`

	Confirmation         int    `json:"confirmacion"`
	ConfirmationTemplate *int64 `json:"plantilla_conf"`
	Reschedule           int    `json:"reprogramacion"`
	RescheduleTemplate   *int64 `json:"plantilla_repr"`
	Cancellation         int    `json:"cancelacion"`
	CancellationTemplate *int64 `json:"plantilla_canc"`
	Reminder             int    `json:"recordatorio"`
	ReminderTemplate     *int64 `json:"plantilla_reco"`
	LeadDays             *int   `json:"dias_antes,omitempty"`
}

func (a Association) FlagValue(f Flag) int {
	switch f {
	case FlagConfirmation:
		return a.Confirmation
	case FlagReschedule:
		return a.Reschedule
	case FlagCancellation:
		return a.Cancellation
	case FlagReminder:
		return a.Reminder
	}
	return 0
}

// WithFlag returns a copy with the flag set. t replaces the paired template
// reference; disabling the reminder also clears the lead days.
func (a Association) WithFlag(f Flag, value int, t *int64, leadDays *int) Association {
	switch f {
	case FlagConfirmation:
		a.Confirmation = value
		a.ConfirmationTemplate = t
	case FlagReschedule:
		a.Reschedule = value
		a.RescheduleTemplate = t
	case FlagCancellation:
		a.Cancellation = value
		a.CancellationTemplate = t
	case FlagReminder:
		a.Reminder = value
		a.ReminderTemplate = t
		a.LeadDays = leadDays
	}
	return a
}
