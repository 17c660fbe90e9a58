package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/rigidsim/internal/linalg"
)

func TestVectorFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Vector(linalg.V(1, 2.5, -3))); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"Vector":[1,2.5,-3]}` {
		t.Errorf("unexpected encoding: %s", got)
	}
}

func TestMatrixFormat(t *testing.T) {
	m := linalg.NewMatrixFrom([][]float64{{1, 2}, {3, 4}, {5, 6}})
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Matrix(m)); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"Matrice":[[1,2],[3,4],[5,6]]}` {
		t.Errorf("unexpected encoding: %s", got)
	}

	var back MatrixJSON
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	parsed, err := back.ParseMatrix()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Equal(m) {
		t.Error("matrix changed through the interchange format")
	}
}

func TestParseMatrixRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"nil", nil},
		{"no rows", [][]float64{}},
		{"empty row", [][]float64{{}}},
		{"ragged", [][]float64{{1, 2}, {3}}},
		{"ragged tail", [][]float64{{1}, {2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MatrixJSON{Matrice: tt.rows}.ParseMatrix()
			if !errors.Is(err, linalg.ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
			if m != nil {
				t.Errorf("expected no matrix, got %v", m)
			}
		})
	}
}

func TestPairFormat(t *testing.T) {
	data, err := json.Marshal(Pair(linalg.V(1, 0, 0), linalg.V(0, 1, 0)))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"v1":{"Vector":[1,0,0]},"v2":{"Vector":[0,1,0]}}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	snaps := []*linalg.Matrix{linalg.Identity(3), linalg.Identity(3).Scale(2)}
	if err := WriteFile(path, Trace(0.1, snaps)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.json"), snaps); err == nil {
		t.Error("expected error for missing directory")
	}
}
