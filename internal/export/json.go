// Package export converts kernel values to the JSON interchange format:
// vectors as {"Vector": [x, y, z]}, matrices as {"Matrice": [[row], ...]}
// and vector pairs as {"v1": ..., "v2": ...}.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/rigidsim/internal/linalg"
)

type VectorJSON struct {
	Vector [3]float64 `json:"Vector"`
}

type MatrixJSON struct {
	Matrice [][]float64 `json:"Matrice"`
}

type PairJSON struct {
	V1 VectorJSON `json:"v1"`
	V2 VectorJSON `json:"v2"`
}

// TraceJSON holds every snapshot of a trace, in step order.
type TraceJSON struct {
	Dt        float64      `json:"dt"`
	Steps     int          `json:"steps"`
	Snapshots []MatrixJSON `json:"snapshots"`
}

func Vector(v linalg.Vec3) VectorJSON {
	return VectorJSON{Vector: v.Array()}
}

func Matrix(m *linalg.Matrix) MatrixJSON {
	return MatrixJSON{Matrice: m.RawRows()}
}

func Pair(a, b linalg.Vec3) PairJSON {
	return PairJSON{V1: Vector(a), V2: Vector(b)}
}

func Trace(dt float64, snaps []*linalg.Matrix) TraceJSON {
	t := TraceJSON{Dt: dt, Steps: len(snaps), Snapshots: make([]MatrixJSON, len(snaps))}
	for i, s := range snaps {
		t.Snapshots[i] = Matrix(s)
	}
	return t
}

// ParseMatrix rebuilds a matrix from its interchange form. Empty and
// ragged inputs yield linalg.ErrDimensionMismatch.
func (m MatrixJSON) ParseMatrix() (*linalg.Matrix, error) {
	if len(m.Matrice) == 0 || len(m.Matrice[0]) == 0 {
		return nil, fmt.Errorf("empty matrix: %w", linalg.ErrDimensionMismatch)
	}
	for i, row := range m.Matrice {
		if len(row) != len(m.Matrice[0]) {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), len(m.Matrice[0]), linalg.ErrDimensionMismatch)
		}
	}
	return linalg.NewMatrixFrom(m.Matrice), nil
}

// Write encodes v as indented JSON.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile encodes v as indented JSON into path.
func WriteFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
