package dashboard

import (
	"sync"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/service/bulk"
	"github.com/ougirez/turnero/internal/service/combos"
	"github.com/ougirez/turnero/internal/service/counts"
	"github.com/ougirez/turnero/internal/service/relation"
)

// Session is one admin's dashboard state: the current selection, the
// per-session combination cache and its coordinator, and the visible result
// list the bulk engine operates on.
type Session struct {
	ID string

	mu         sync.Mutex
	selection  relation.Selection
	cache      *combos.Cache
	combos     *combos.Coordinator
	bulk       *bulk.Engine
	aggregator *counts.Aggregator
	visible    []domain.Association
}

// visibleRows returns a copy so callers can release the session lock.
func (s *Session) visibleRows() []domain.Association {
	rows := make([]domain.Association, len(s.visible))
	copy(rows, s.visible)
	return rows
}

// applyUpdated replaces visible rows by id with their updated versions.
func (s *Session) applyUpdated(updated []domain.Association) {
	if len(updated) == 0 {
		return
	}
	byID := make(map[int64]domain.Association, len(updated))
	for _, row := range updated {
		byID[row.ID] = row
	}

	next := make([]domain.Association, len(s.visible))
	copy(next, s.visible)
	for i := range next {
		if fresh, ok := byID[next[i].ID]; ok {
			next[i] = fresh
		}
	}
	s.visible = next
}
