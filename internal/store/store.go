// Package store persists finished trajectory runs to a data directory so
// they can be listed, plotted and exported later. Each run gets its own
// directory holding metadata.json and trajectory.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/BjoB/gros/internal/trajectory"
)

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
	Mass          float64   `json:"mass"`
	Rs            float64   `json:"rs"`
	StepSize      float64   `json:"step_size"`
	ProperTimeEnd float64   `json:"proper_time_end"`
	Status        string    `json:"status"`
	Points        int       `json:"points"`
}

var csvHeader = []string{"tau", "t", "x", "y", "z"}

// Save writes a run's metadata and trajectory and returns the run ID.
func (s *Store) Save(meta RunMetadata, ds *trajectory.Dataset) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Rs = ds.Rs()
	meta.Points = ds.Size()

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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, p := range ds.Points() {
		row := []string{
			formatFloat(p.Tau),
			formatFloat(p.T),
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.Z),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// Load reads a run's metadata.
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

// LoadTrajectory reads a run's stored Cartesian trajectory.
func (s *Store) LoadTrajectory(runID string) (*trajectory.Dataset, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return trajectory.FromPoints(nil, meta.Rs), nil
	}

	points := make([]trajectory.Point, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("store: trajectory row has %d fields, want %d", len(rec), len(csvHeader))
		}
		vals := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("store: parsing trajectory field %q: %w", field, err)
			}
			vals[i] = v
		}
		points = append(points, trajectory.Point{
			Tau: vals[0], T: vals[1], X: vals[2], Y: vals[3], Z: vals[4],
		})
	}
	return trajectory.FromPoints(points, meta.Rs), nil
}

// List returns the metadata of all stored runs, newest first.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []*RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip partial or foreign directories
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
