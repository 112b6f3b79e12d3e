package relation

import "github.com/ougirez/turnero/internal/domain"

// Triple is one reachable (provider, service, specialty) combination.
type Triple struct {
	ProviderID  int64
	ServiceID   int64
	SpecialtyID int64
}

// Index holds every combination loaded so far: association rows plus the
// referral variant, where a deriva row makes its destination combination
// reachable under the owning provider. Read-only once built; a reload
// builds a new Index.
type Index struct {
	triples []Triple
}

func NewIndex(assocs []domain.Association, referrals []domain.Referral) *Index {
	triples := make([]Triple, 0, len(assocs)+len(referrals))
	for _, a := range assocs {
		triples = append(triples, Triple{
			ProviderID:  a.ProviderID,
			ServiceID:   a.ServiceID,
			SpecialtyID: a.SpecialtyID,
		})
	}
	for _, r := range referrals {
		triples = append(triples, Triple{
			ProviderID:  r.ProviderID,
			ServiceID:   r.DestServiceID,
			SpecialtyID: r.DestSpecialtyID,
		})
	}
	return &Index{triples: triples}
}

func (ix *Index) Triples() []Triple {
	return ix.triples
}

func (ix *Index) Len() int {
	return len(ix.triples)
}
