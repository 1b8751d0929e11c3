package domain

import (
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// candidateSet is an insertion-ordered set of candidate paths. The first
// occurrence of a path wins and the input file itself is never admitted, so a
// file cannot resolve to itself.
type candidateSet struct {
	self  m.Path
	seen  map[m.Path]struct{}
	paths []m.Path
}

func newCandidateSet(self m.Path) *candidateSet {
	return &candidateSet{
		self: self,
		seen: make(map[m.Path]struct{}),
	}
}

// Add appends the given paths, skipping duplicates and the input file.
func (s *candidateSet) Add(paths ...m.Path) {
	for _, path := range paths {
		if path == s.self {
			continue
		}

		if _, ok := s.seen[path]; ok {
			continue
		}

		s.seen[path] = struct{}{}
		s.paths = append(s.paths, path)
	}
}

// Paths returns the candidates in insertion order.
func (s *candidateSet) Paths() []m.Path {
	return s.paths
}
