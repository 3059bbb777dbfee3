package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/sim"
)

// Store persists finished runs under a base directory, one subdirectory
// per run: metadata.json, iterations.csv and circles.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	N             int       `json:"circles"`
	Iterations    int       `json:"iterations"`
	Workers       int       `json:"workers"`
	Seed          int64     `json:"seed"`
	ElapsedSec    float64   `json:"elapsed_sec"`
	TotalOverlaps int       `json:"total_overlaps"`
}

type IterationRecord struct {
	Iteration  int     `csv:"iteration"`
	Overlaps   int     `csv:"overlaps"`
	ElapsedSec float64 `csv:"elapsed_sec"`
}

type CircleRecord struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	R float64 `csv:"r"`
}

func IterationRecords(res *sim.Result) []IterationRecord {
	recs := make([]IterationRecord, len(res.Stats))
	for i, it := range res.Stats {
		recs[i] = IterationRecord{
			Iteration:  it.Iteration,
			Overlaps:   it.Overlaps,
			ElapsedSec: it.Elapsed.Seconds(),
		}
	}
	return recs
}

func CircleRecords(cs []circles.Circle) []CircleRecord {
	recs := make([]CircleRecord, len(cs))
	for i, c := range cs {
		recs[i] = CircleRecord{X: c.X, Y: c.Y, R: c.R}
	}
	return recs
}

func (s *Store) Save(cfg sim.Config, res *sim.Result) (string, error) {
	runID := fmt.Sprintf("circles_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		N:             cfg.N,
		Iterations:    cfg.Iterations,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
		ElapsedSec:    res.Elapsed.Seconds(),
		TotalOverlaps: res.TotalOverlaps(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	iterFile, err := os.Create(filepath.Join(runDir, "iterations.csv"))
	if err != nil {
		return "", err
	}
	defer iterFile.Close()
	if err := gocsv.Marshal(IterationRecords(res), iterFile); err != nil {
		return "", fmt.Errorf("writing iterations: %w", err)
	}

	circleFile, err := os.Create(filepath.Join(runDir, "circles.csv"))
	if err != nil {
		return "", err
	}
	defer circleFile.Close()
	if err := gocsv.Marshal(CircleRecords(res.Final), circleFile); err != nil {
		return "", fmt.Errorf("writing circles: %w", err)
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadIterations(runID string) ([]IterationRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "iterations.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs []IterationRecord
	if err := gocsv.Unmarshal(f, &recs); err != nil {
		return nil, fmt.Errorf("reading iterations: %w", err)
	}
	return recs, nil
}

func (s *Store) LoadCircles(runID string) ([]CircleRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "circles.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs []CircleRecord
	if err := gocsv.Unmarshal(f, &recs); err != nil {
		return nil, fmt.Errorf("reading circles: %w", err)
	}
	return recs, nil
}
