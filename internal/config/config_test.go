package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/linalg"
)

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()
	require.NoError(t, s.Validate())
	assert.Equal(t, "box", s.Shape.Kind)
	assert.InDelta(t, 0.01, s.Dt(), 1e-12)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"zero mass", func(s *Scenario) { s.Mass = 0 }},
		{"negative duration", func(s *Scenario) { s.Duration = -1 }},
		{"no steps", func(s *Scenario) { s.Steps = 0 }},
		{"negative terms", func(s *Scenario) { s.Terms = -2 }},
		{"unknown shape", func(s *Scenario) { s.Shape.Kind = "torus" }},
		{"degenerate box", func(s *Scenario) { s.Shape.N = 1 }},
		{"disc without radius", func(s *Scenario) { s.Shape = ShapeConfig{Kind: "disc", Rings: 3} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultScenario()
			tt.mutate(s)
			require.ErrorIs(t, s.Validate(), ErrInvalidScenario)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	s := GetPreset("push")
	require.NotNil(t, s)
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Name, loaded.Name)
	assert.Equal(t, s.Loads, loaded.Loads)
	assert.Equal(t, s.Steps, loaded.Steps)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPresetsBuild(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s := GetPreset(name)
			require.NotNil(t, s)
			st, loads, err := s.Build()
			require.NoError(t, err)
			require.NoError(t, st.Validate())

			f, a := loads.Flatten()
			assert.Len(t, a, len(f))
		})
	}
}

func TestGetPresetIsCopy(t *testing.T) {
	s := GetPreset("push")
	s.Loads[0].Forces[0].Force = Vec{1, 2, 3}
	assert.NotEqual(t, Vec{1, 2, 3}, Presets["push"].Loads[0].Forces[0].Force)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestBuildRelativePoints(t *testing.T) {
	s := DefaultScenario()
	s.Shape.Origin = Vec{1, 1, 1}
	s.Loads = []LoadGroup{{Name: "push", Forces: []Force{{Force: Vec{1, 0, 0}, Point: Vec{0, 0, 1}, Relative: true}}}}

	st, loads, err := s.Build()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, st.Centre.X, 1e-12)

	_, pts := loads.Flatten()
	require.Len(t, pts, 1)
	assert.InDelta(t, 0, linalg.Distance(pts[0], st.Centre.Add(linalg.V(0, 0, 1))).Norm(), 1e-12)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := GetPreset("push")
	require.NoError(t, Write(&buf, p))
	assert.Contains(t, buf.String(), "description: off-centre push under gravity")

	var back Scenario
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, p.Loads, back.Loads)
	assert.Equal(t, p.Mass, back.Mass)
}

func TestSetParam(t *testing.T) {
	s := DefaultScenario()
	require.NoError(t, s.SetParam("steps", 250))
	require.NoError(t, s.SetParam("vy", -2))
	require.NoError(t, s.SetParam("wz", 3))
	assert.Equal(t, 250, s.Steps)
	assert.Equal(t, Vec{0, -2, 0}, s.Initial.Velocity)
	assert.Equal(t, Vec{0, 0, 3}, s.Initial.AngularVelocity)

	assert.ErrorIs(t, s.SetParam("colour", 1), ErrInvalidScenario)
}
