package service

import (
	"sync"
)

// CSVStore retains the most recently uploaded peer-metrics CSV rows.
// Replace-on-upload: the dashboard works with one dataset at a time.
type CSVStore struct {
	mu       sync.RWMutex
	filename string
	rows     []map[string]any
}

func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// Store replaces the retained dataset and returns the row count.
func (s *CSVStore) Store(filename string, rows []map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filename = filename
	s.rows = rows
	return len(rows)
}

// Rows returns the retained dataset.
func (s *CSVStore) Rows() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Filename returns the name of the retained dataset.
func (s *CSVStore) Filename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filename
}
