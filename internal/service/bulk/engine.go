package bulk

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/constants"
	"github.com/ougirez/turnero/internal/pkg/logger"
	"github.com/ougirez/turnero/internal/pkg/metrics"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"golang.org/x/sync/errgroup"
)

type Outcome string

const (
	OutcomeNoChange Outcome = "no_change"
	OutcomeUpdated  Outcome = "updated"
	OutcomePartial  Outcome = "partial"
	OutcomeFailed   Outcome = "failed"
)

// Options carries the second phase of an enable: the template chosen for the
// flag, and the lead days when the flag is the reminder.
type Options struct {
	TemplateID *int64
	LeadDays   *int
}

// Report is the per-call accounting: which rows were updated, which ids
// failed, and a user-facing summary distinguishing full, partial and total
// failure.
type Report struct {
	Outcome   Outcome              `json:"outcome"`
	Attempted int                  `json:"attempted"`
	Updated   []domain.Association `json:"updated"`
	FailedIDs []int64              `json:"failed_ids"`
	Message   string               `json:"message"`
}

// Engine applies one flag mutation to a set of association rows with
// settle-all semantics and writes successful rows back into the cache.
type Engine struct {
	cache    rowCache
	upstream upstream.Client
	metrics  *metrics.EngineMetrics
}

// rowCache is what the engine needs from the combination cache.
type rowCache interface {
	UpdateRow(row domain.Association) bool
}

func NewEngine(cache rowCache, client upstream.Client, m *metrics.EngineMetrics) *Engine {
	return &Engine{cache: cache, upstream: client, metrics: m}
}

// ApplyToAll mutates flag to value on every target row that differs.
// Validation failures return before any request is issued; after that, each
// row's outcome is recorded independently.
func (e *Engine) ApplyToAll(ctx context.Context, targets []domain.Association, flag domain.Flag, value int, opts Options) (*Report, error) {
	spec, ok := flagSpecs[flag]
	if !ok {
		return nil, constants.ErrUnknownFlag
	}
	if value != 0 && value != 1 {
		return nil, constants.ErrInvalidFlagValue
	}
	if len(targets) == 0 {
		return nil, constants.ErrNoTargets
	}

	if value == 1 {
		if spec.requiresTemplate && opts.TemplateID == nil {
			return nil, constants.ErrTemplateRequired
		}
		if spec.hasLeadDays {
			if opts.LeadDays == nil || *opts.LeadDays < minLeadDays || *opts.LeadDays > maxLeadDays {
				return nil, constants.ErrLeadDaysRange
			}
		}
	}

	var toChange []domain.Association
	for _, row := range targets {
		if row.FlagValue(flag) != value {
			toChange = append(toChange, row)
		}
	}
	if len(toChange) == 0 {
		e.metrics.ObserveBulkOutcome(string(OutcomeNoChange))
		return &Report{
			Outcome: OutcomeNoChange,
			Updated: []domain.Association{},
			Message: "no rows needed changing",
		}, nil
	}

	patch := e.buildPatch(flag, spec, value, opts)

	var nextTemplate *int64
	var nextLead *int
	if value == 1 {
		nextTemplate = opts.TemplateID
		nextLead = opts.LeadDays
	}

	var (
		mu      sync.Mutex
		updated []domain.Association
		failed  []int64
	)
	eg := errgroup.Group{}
	for _, row := range toChange {
		row := row
		eg.Go(func() error {
			if _, err := e.upstream.UpdateAssociation(ctx, row.ID, patch); err != nil {
				logger.Warnf(ctx, "bulk update id-%d: %s", row.ID, err.Error())
				mu.Lock()
				failed = append(failed, row.ID)
				mu.Unlock()
				return nil
			}

			// apply exactly the patched fields locally; completions
			// arrive in any order, so everything is keyed by row id
			next := row.WithFlag(flag, value, nextTemplate, nextLead)
			e.cache.UpdateRow(next)
			mu.Lock()
			updated = append(updated, next)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	sort.Slice(updated, func(i, j int) bool { return updated[i].ID < updated[j].ID })
	sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })

	report := &Report{
		Attempted: len(toChange),
		Updated:   updated,
		FailedIDs: failed,
	}
	switch {
	case len(failed) == 0:
		report.Outcome = OutcomeUpdated
		report.Message = fmt.Sprintf("updated %d rows", len(updated))
	case len(updated) == 0:
		report.Outcome = OutcomeFailed
		report.Message = fmt.Sprintf("all %d updates failed", len(failed))
	default:
		report.Outcome = OutcomePartial
		report.Message = fmt.Sprintf("updated %d/%d rows, failed ids: %v", len(updated), report.Attempted, failed)
	}
	e.metrics.ObserveBulkOutcome(string(report.Outcome))

	return report, nil
}

// buildPatch produces the upstream PATCH body. Disabling clears the paired
// template reference (and lead days for the reminder) in the same request.
func (e *Engine) buildPatch(flag domain.Flag, spec flagSpec, value int, opts Options) map[string]interface{} {
	patch := map[string]interface{}{
		string(flag): value,
	}
	if value == 1 {
		patch[spec.templateField] = *opts.TemplateID
		if spec.hasLeadDays {
			patch["dias_antes"] = *opts.LeadDays
		}
	} else {
		patch[spec.templateField] = nil
		if spec.hasLeadDays {
			patch["dias_antes"] = nil
		}
	}
	return patch
}
