package grid

import "github.com/kamstrup/intmap"

// CellSet is a multiset of cells keyed by their row-major index.
// Counting lets a body hold the same cell twice for the one tick after growth.
type CellSet struct {
	grid   Grid
	counts *intmap.Map[int, int]
}

// NewCellSet creates an empty set sized for the expected number of cells
func NewCellSet(g Grid, capacity int) *CellSet {
	return &CellSet{
		grid:   g,
		counts: intmap.New[int, int](capacity),
	}
}

// CellSetOf builds a set from the given cells
func CellSetOf(g Grid, cells ...Cell) *CellSet {
	s := NewCellSet(g, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Add inserts one occurrence of c
func (s *CellSet) Add(c Cell) {
	key := s.grid.Index(c)
	n, _ := s.counts.Get(key)
	s.counts.Put(key, n+1)
}

// Remove drops one occurrence of c
func (s *CellSet) Remove(c Cell) {
	key := s.grid.Index(c)
	n, ok := s.counts.Get(key)
	if !ok {
		return
	}
	if n <= 1 {
		s.counts.Del(key)
		return
	}
	s.counts.Put(key, n-1)
}

// Has reports whether c is in the set
func (s *CellSet) Has(c Cell) bool {
	if s == nil || !s.grid.Contains(c) {
		return false
	}
	_, ok := s.counts.Get(s.grid.Index(c))
	return ok
}

// Len is the number of distinct cells
func (s *CellSet) Len() int {
	if s == nil {
		return 0
	}
	return s.counts.Len()
}

// Clear empties the set, keeping its allocation
func (s *CellSet) Clear() {
	s.counts.Clear()
}
