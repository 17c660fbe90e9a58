package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	traceFile    = "trace.json"
)

// StatesHeader is the column layout of states.csv.
var StatesHeader = []string{
	"time",
	"gx", "gy", "gz",
	"vx", "vy", "vz",
	"ax", "ay", "az",
	"wx", "wy", "wz",
}

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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Shape     string             `json:"shape"`
	Timestamp time.Time          `json:"timestamp"`
	Mass      float64            `json:"mass"`
	Points    int                `json:"points"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Terms     int                `json:"terms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Row is one line of states.csv.
type Row struct {
	Time            float64
	Centre          linalg.Vec3
	Velocity        linalg.Vec3
	Angle           linalg.Vec3
	AngularVelocity linalg.Vec3
}

// Save writes the metadata, the state table and the point cloud trace of a
// run into a new directory and returns its id.
func (s *Store) Save(sc *config.Scenario, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", sc.Name, now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	points := 0
	if len(result.States) > 0 && result.States[0].Cloud != nil {
		points = result.States[0].Cloud.Cols()
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  sc.Name,
		Shape:     sc.Shape.Kind,
		Timestamp: now,
		Mass:      sc.Mass,
		Points:    points,
		Dt:        sc.Dt(),
		Duration:  sc.Duration,
		Steps:     result.StepsTaken,
		Terms:     sc.Terms,
		Metrics:   result.Metrics,
	}

	if err := export.WriteFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, statesFile), func(w io.Writer) error {
		return WriteStates(w, result)
	}); err != nil {
		return "", err
	}
	if err := export.WriteFile(filepath.Join(runDir, traceFile), export.Trace(sc.Dt(), result.Snapshots)); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteStates writes the state table of result as CSV.
func WriteStates(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StatesHeader); err != nil {
		return err
	}

	for i, st := range result.States {
		row := make([]string, 0, len(StatesHeader))
		row = append(row, formatFloat(result.Times[i]))
		for _, v := range []linalg.Vec3{st.Centre, st.Velocity, st.Angle, st.AngularVelocity} {
			for _, c := range v.Array() {
				row = append(row, formatFloat(c))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
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

func (s *Store) LoadStates(runID string) (rows []Row, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, file.Close()) }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(StatesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows = make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", statesFile, i+2, err)
			}
			vals[j] = v
		}
		rows = append(rows, Row{
			Time:            vals[0],
			Centre:          linalg.V(vals[1], vals[2], vals[3]),
			Velocity:        linalg.V(vals[4], vals[5], vals[6]),
			Angle:           linalg.V(vals[7], vals[8], vals[9]),
			AngularVelocity: linalg.V(vals[10], vals[11], vals[12]),
		})
	}

	return rows, nil
}

// LoadTrace reads back the point cloud snapshots of a run.
func (s *Store) LoadTrace(runID string) (float64, []*linalg.Matrix, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return 0, nil, err
	}

	var tr export.TraceJSON
	if err := json.Unmarshal(data, &tr); err != nil {
		return 0, nil, err
	}

	snaps := make([]*linalg.Matrix, len(tr.Snapshots))
	for i, m := range tr.Snapshots {
		snaps[i], err = m.ParseMatrix()
		if err != nil {
			return 0, nil, fmt.Errorf("snapshot %d of %s: %w", i, runID, err)
		}
	}
	return tr.Dt, snaps, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return fn(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
