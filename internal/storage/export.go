package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
)

type ExportData struct {
	Meta       RunMetadata       `json:"meta"`
	Iterations []IterationRecord `json:"iterations"`
}

// ExportJSON writes a stored run's metadata and iteration series.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	iters, err := s.LoadIterations(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Iterations: iters})
}

// ExportCSV writes a stored run's iteration series.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	iters, err := s.LoadIterations(runID)
	if err != nil {
		return err
	}
	return gocsv.Marshal(iters, w)
}
