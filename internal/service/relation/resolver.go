package relation

import "github.com/ougirez/turnero/internal/domain"

// Availability is, per dimension, the subset of ids still reachable under
// the other two dimensions' selections.
type Availability struct {
	Providers   IDSet
	Services    IDSet
	Specialties IDSet
}

// Resolve recomputes all three availability sets from scratch against the
// index. A dimension's own selection never constrains itself, and a pair of
// empty sibling selections means the full master list, not a projection of
// the loaded rows.
func Resolve(sel Selection, ix *Index, cat *domain.Catalog) Availability {
	return Availability{
		Providers: project(ix, sel.Services, sel.Specialties, cat.ProviderIDs,
			func(t Triple) (int64, bool) {
				return t.ProviderID, matches(t.ServiceID, sel.Services) && matches(t.SpecialtyID, sel.Specialties)
			}),
		Services: project(ix, sel.Providers, sel.Specialties, cat.ServiceIDs,
			func(t Triple) (int64, bool) {
				return t.ServiceID, matches(t.ProviderID, sel.Providers) && matches(t.SpecialtyID, sel.Specialties)
			}),
		Specialties: project(ix, sel.Providers, sel.Services, cat.SpecialtyIDs,
			func(t Triple) (int64, bool) {
				return t.SpecialtyID, matches(t.ProviderID, sel.Providers) && matches(t.ServiceID, sel.Services)
			}),
	}
}

func matches(id int64, sel IDSet) bool {
	return sel.Empty() || sel.Has(id)
}

func project(ix *Index, selA, selB IDSet, full func() []int64, pick func(Triple) (int64, bool)) IDSet {
	if selA.Empty() && selB.Empty() {
		return NewIDSet(full()...)
	}
	out := NewIDSet()
	for _, t := range ix.Triples() {
		if id, ok := pick(t); ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Prune drops selected ids that fell out of their own availability set (the
// closure rule: a selection unreachable under the sibling constraints is
// invalid). Reports whether anything was dropped.
func Prune(sel Selection, av Availability) (Selection, bool) {
	changed := false
	next := Selection{
		Providers:   prune(sel.Providers, av.Providers, &changed),
		Services:    prune(sel.Services, av.Services, &changed),
		Specialties: prune(sel.Specialties, av.Specialties, &changed),
	}
	return next, changed
}

func prune(sel, available IDSet, changed *bool) IDSet {
	out := NewIDSet()
	for id := range sel {
		if available.Has(id) {
			out[id] = struct{}{}
		} else {
			*changed = true
		}
	}
	return out
}

// ResolveClosed resolves and prunes until the selection is stable. Pruning
// only relaxes constraints, so the loop terminates quickly; the bound is a
// guard, not an expected path.
func ResolveClosed(sel Selection, ix *Index, cat *domain.Catalog) (Selection, Availability) {
	for i := 0; i < 4; i++ {
		av := Resolve(sel, ix, cat)
		next, changed := Prune(sel, av)
		if !changed {
			return next, av
		}
		sel = next
	}
	av := Resolve(sel, ix, cat)
	sel, _ = Prune(sel, av)
	return sel, av
}
