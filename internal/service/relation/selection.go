package relation

import "sort"

// Dimension names one facet of the provider/service/specialty filter.
type Dimension string

const (
	DimensionProvider  Dimension = "efector"
	DimensionService   Dimension = "servicio"
	DimensionSpecialty Dimension = "especialidad"
)

func (d Dimension) Valid() bool {
	switch d {
	case DimensionProvider, DimensionService, DimensionSpecialty:
		return true
	}
	return false
}

// IDSet is a set of entity ids. The empty set is the "no restriction"
// sentinel everywhere it is used as a filter.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Empty() bool {
	return len(s) == 0
}

// IDs returns the members sorted, for stable responses.
func (s IDSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Selection is the current multi-select state of the three dimensions.
// Values are treated as immutable; With produces an updated copy.
type Selection struct {
	Providers   IDSet
	Services    IDSet
	Specialties IDSet
}

func NewSelection() Selection {
	return Selection{
		Providers:   NewIDSet(),
		Services:    NewIDSet(),
		Specialties: NewIDSet(),
	}
}

func (s Selection) Get(dim Dimension) IDSet {
	switch dim {
	case DimensionProvider:
		return s.Providers
	case DimensionService:
		return s.Services
	case DimensionSpecialty:
		return s.Specialties
	}
	return nil
}

func (s Selection) With(dim Dimension, ids []int64) Selection {
	next := Selection{
		Providers:   s.Providers.Clone(),
		Services:    s.Services.Clone(),
		Specialties: s.Specialties.Clone(),
	}
	switch dim {
	case DimensionProvider:
		next.Providers = NewIDSet(ids...)
	case DimensionService:
		next.Services = NewIDSet(ids...)
	case DimensionSpecialty:
		next.Specialties = NewIDSet(ids...)
	}
	return next
}
