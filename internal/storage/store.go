package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ratgrav/internal/config"
	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// ErrMalformedRow indicates a frames.csv row that cannot be parsed.
var ErrMalformedRow = errors.New("storage: malformed frame row")

var framesHeader = []string{"tick", "body", "x", "y", "z", "x_approx", "y_approx", "z_approx", "distance"}

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
	ID         string         `json:"id"`
	Scenario   string         `json:"scenario"`
	Timestamp  time.Time      `json:"timestamp"`
	Ticks      int            `json:"ticks"`
	StepsTaken int            `json:"steps_taken"`
	Policy     string         `json:"policy"`
	G          exact.Rational `json:"g"`
	Bodies     []string       `json:"bodies"`
	Error      string         `json:"error,omitempty"`
}

// Save writes a run directory holding metadata.json and frames.csv.
// runErr is the error the run stopped with, if any; the frames recorded
// before it are still saved.
func (s *Store) Save(cfg *config.Config, result *sim.Result, runErr error) (string, error) {
	if err := config.ValidateName(cfg.Name); err != nil {
		return "", err
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   cfg.Name,
		Timestamp:  now,
		Ticks:      cfg.Ticks,
		StepsTaken: result.StepsTaken,
		Policy:     cfg.Policy,
		G:          cfg.G,
		Bodies:     make([]string, len(cfg.Bodies)),
	}
	for i, b := range cfg.Bodies {
		meta.Bodies[i] = b.Name
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}

	for _, frame := range frames {
		tick := strconv.Itoa(frame.Tick)
		for _, b := range frame.Bodies {
			approx := b.Position.Floats()
			row := []string{
				tick,
				b.Name,
				b.Position.X.String(),
				b.Position.Y.String(),
				b.Position.Z.String(),
				strconv.FormatFloat(approx[0], 'g', -1, 64),
				strconv.FormatFloat(approx[1], 'g', -1, 64),
				strconv.FormatFloat(approx[2], 'g', -1, 64),
				b.Distance.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back into frames with exact positions.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for i, record := range records {
		if i == 0 {
			continue
		}

		tick, state, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}

		if n := len(frames); n == 0 || frames[n-1].Tick != tick {
			frames = append(frames, sim.Frame{Tick: tick})
		}
		last := &frames[len(frames)-1]
		last.Bodies = append(last.Bodies, state)
	}

	return frames, nil
}

func parseRow(record []string) (int, sim.BodyState, error) {
	tick, err := strconv.Atoi(record[0])
	if err != nil {
		return 0, sim.BodyState{}, fmt.Errorf("%w: tick %q", ErrMalformedRow, record[0])
	}

	var axes [3]exact.Rational
	for j := range axes {
		axes[j], err = exact.Parse(record[2+j])
		if err != nil {
			return 0, sim.BodyState{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
	}

	dist, ok := new(big.Int).SetString(record[8], 10)
	if !ok {
		return 0, sim.BodyState{}, fmt.Errorf("%w: distance %q", ErrMalformedRow, record[8])
	}

	return tick, sim.BodyState{
		Name:     record[1],
		Position: exact.NewVector3(axes[0], axes[1], axes[2]),
		Distance: dist,
	}, nil
}
