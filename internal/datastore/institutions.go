package datastore

import (
	"context"
	"slices"
)

func (s *Store) GetInstitutions(_ context.Context) []Institution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.institutions)
	if out == nil {
		out = []Institution{}
	}
	return out
}

func (s *Store) GetInstitutionByID(_ context.Context, id string) (Institution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inst := range s.institutions {
		if inst.ID == id {
			return inst, true
		}
	}
	return Institution{}, false
}
