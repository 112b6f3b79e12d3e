package bulk

import "github.com/ougirez/turnero/internal/domain"

// flagSpec is the closed mapping from a messaging flag to its paired
// template field. Every flag needs a template to be enabled; the reminder
// additionally carries a lead-time in days.
type flagSpec struct {
	templateField    string
	requiresTemplate bool
	hasLeadDays      bool
}

var flagSpecs = map[domain.Flag]flagSpec{
	domain.FlagConfirmation: {templateField: "plantilla_conf", requiresTemplate: true},
	domain.FlagReschedule:   {templateField: "plantilla_repr", requiresTemplate: true},
	domain.FlagCancellation: {templateField: "plantilla_canc", requiresTemplate: true},
	domain.FlagReminder:     {templateField: "plantilla_reco", requiresTemplate: true, hasLeadDays: true},
}

const (
	minLeadDays = 0
	maxLeadDays = 5
)
