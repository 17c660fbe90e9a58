package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/rigidsim/internal/linalg"
)

func TestBatchPreservesOrder(t *testing.T) {
	var jobs []Job
	for i := 0; i < 6; i++ {
		s := testState(t)
		s.Velocity = linalg.V(float64(i), 0, 0)
		jobs = append(jobs, Job{Name: "drift", State: s, Config: Config{Duration: 1, Steps: 10}})
	}

	results, err := NewBatch(nil, 2).Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, r := range results {
		got := r.Final().Centre.X
		if d := got - float64(i); d > 1e-9 || d < -1e-9 {
			t.Errorf("job %d: expected centre x %d, got %v", i, i, got)
		}
		if _, ok := r.Metrics["displacement"]; !ok {
			t.Errorf("job %d: missing metrics", i)
		}
	}
}

func TestBatchFailure(t *testing.T) {
	bad := testState(t)
	bad.Inertia = linalg.NewMatrix(3, 3)

	jobs := []Job{
		{Name: "ok", State: testState(t), Config: Config{Duration: 1, Steps: 5}},
		{Name: "singular", State: bad, Config: Config{Duration: 1, Steps: 5}},
	}

	_, err := NewBatch(nil, 0).Run(context.Background(), jobs)
	if !errors.Is(err, linalg.ErrSingularMatrix) {
		t.Errorf("expected wrapped ErrSingularMatrix, got %v", err)
	}
}

func TestBatchEmpty(t *testing.T) {
	results, err := NewBatch(nil, 4).Run(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Errorf("expected empty result, got %v (%v)", results, err)
	}
}

func TestBatchSharedStateUntouched(t *testing.T) {
	s := testState(t)
	s.AngularVelocity = linalg.V(0, 0, 1)
	before := s.Clone()

	jobs := []Job{
		{Name: "a", State: s, Config: Config{Duration: 1, Steps: 10}},
		{Name: "b", State: s, Config: Config{Duration: 1, Steps: 10}},
	}
	results, err := NewBatch(nil, 0).Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !results[0].Final().Cloud.Equal(results[1].Final().Cloud) {
		t.Error("identical jobs should give identical results")
	}
	if !s.Cloud.Equal(before.Cloud) {
		t.Error("input state must not be modified")
	}
}
