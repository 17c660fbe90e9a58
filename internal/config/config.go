package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shapes"
)

const (
	DefaultMass     = 1.0
	DefaultDuration = 1.0
	DefaultSteps    = 100
	DefaultBoxN     = 4
	DefaultRings    = 4
	DefaultLayers   = 5
)

// ErrInvalidScenario indicates a scenario that cannot be simulated.
var ErrInvalidScenario = errors.New("config: invalid scenario")

// Vec is a vector written as [x, y, z] in YAML.
type Vec [3]float64

func (v Vec) Vec3() linalg.Vec3 { return linalg.V(v[0], v[1], v[2]) }

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Mass        float64       `yaml:"mass"`
	Shape       ShapeConfig   `yaml:"shape"`
	Initial     InitialConfig `yaml:"initial"`
	Loads       []LoadGroup   `yaml:"loads"`
	Duration    float64       `yaml:"duration"`
	Steps       int           `yaml:"steps"`
	Terms       int           `yaml:"terms"`
}

type ShapeConfig struct {
	Kind   string  `yaml:"kind"`
	N      int     `yaml:"n,omitempty"`
	Size   Vec     `yaml:"size,omitempty"`
	Origin Vec     `yaml:"origin"`
	Radius float64 `yaml:"radius,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Rings  int     `yaml:"rings,omitempty"`
	Layers int     `yaml:"layers,omitempty"`
}

type InitialConfig struct {
	Velocity        Vec `yaml:"velocity"`
	Angle           Vec `yaml:"angle"`
	AngularVelocity Vec `yaml:"angular_velocity"`
}

// LoadGroup is one source of forces, such as gravity or a push.
type LoadGroup struct {
	Name   string  `yaml:"name"`
	Forces []Force `yaml:"forces"`
}

// Force is a force and its application point. A relative point is an
// offset from the initial centre of mass.
type Force struct {
	Force    Vec  `yaml:"force"`
	Point    Vec  `yaml:"point"`
	Relative bool `yaml:"relative,omitempty"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name: "default",
		Mass: DefaultMass,
		Shape: ShapeConfig{
			Kind:   "box",
			N:      DefaultBoxN,
			Size:   Vec{1, 1, 1},
			Origin: Vec{-0.5, -0.5, -0.5},
		},
		Duration: DefaultDuration,
		Steps:    DefaultSteps,
		Terms:    linalg.DefaultTerms,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, s.Validate()
}

// Write encodes s as YAML.
func Write(w io.Writer, s *Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy of s.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Loads = make([]LoadGroup, len(s.Loads))
	for i, g := range s.Loads {
		c.Loads[i] = LoadGroup{Name: g.Name, Forces: append([]Force(nil), g.Forces...)}
	}
	return &c
}

func (s *Scenario) Validate() error {
	if s.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g: %w", s.Mass, ErrInvalidScenario)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g: %w", s.Duration, ErrInvalidScenario)
	}
	if s.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d: %w", s.Steps, ErrInvalidScenario)
	}
	if s.Terms < 0 {
		return fmt.Errorf("terms must not be negative, got %d: %w", s.Terms, ErrInvalidScenario)
	}
	switch s.Shape.Kind {
	case "box":
		if s.Shape.N < 2 {
			return fmt.Errorf("box needs n >= 2, got %d: %w", s.Shape.N, ErrInvalidScenario)
		}
	case "disc", "cylinder":
		if s.Shape.Radius <= 0 || s.Shape.Rings < 2 {
			return fmt.Errorf("%s needs radius > 0 and rings >= 2: %w", s.Shape.Kind, ErrInvalidScenario)
		}
	default:
		return fmt.Errorf("unknown shape %q: %w", s.Shape.Kind, ErrInvalidScenario)
	}
	return nil
}

// Dt returns the timestep Duration/Steps.
func (s *Scenario) Dt() float64 {
	return s.Duration / float64(s.Steps)
}

// Cloud generates the initial point cloud.
func (s *Scenario) Cloud() *linalg.Matrix {
	sh := s.Shape
	switch sh.Kind {
	case "disc":
		return shapes.Disc(sh.Radius, sh.Origin.Vec3(), sh.Rings)
	case "cylinder":
		layers := sh.Layers
		if layers == 0 {
			layers = DefaultLayers
		}
		return shapes.Cylinder(sh.Radius, sh.Height, sh.Origin.Vec3(), sh.Rings, layers)
	default:
		return shapes.Box(sh.N, sh.Size.Vec3(), sh.Origin.Vec3())
	}
}

// Build returns the initial body state and the loads of the scenario.
func (s *Scenario) Build() (body.State, body.Loads, error) {
	if err := s.Validate(); err != nil {
		return body.State{}, body.Loads{}, err
	}
	st, err := body.NewState(s.Cloud(), s.Mass)
	if err != nil {
		return body.State{}, body.Loads{}, err
	}
	st.Velocity = s.Initial.Velocity.Vec3()
	st.Angle = s.Initial.Angle.Vec3()
	st.AngularVelocity = s.Initial.AngularVelocity.Vec3()

	var loads body.Loads
	for _, g := range s.Loads {
		forces := make([]linalg.Vec3, len(g.Forces))
		points := make([]linalg.Vec3, len(g.Forces))
		for i, f := range g.Forces {
			forces[i] = f.Force.Vec3()
			points[i] = f.Point.Vec3()
			if f.Relative {
				points[i] = points[i].Add(st.Centre)
			}
		}
		loads = loads.Add(forces, points)
	}
	return st, loads, nil
}

// SetParam sets a numeric scenario field by name: mass, duration, steps,
// terms, vx/vy/vz for the initial velocity or wx/wy/wz for the initial
// angular velocity.
func (s *Scenario) SetParam(name string, v float64) error {
	axes := map[byte]int{'x': 0, 'y': 1, 'z': 2}
	switch name {
	case "mass":
		s.Mass = v
	case "duration":
		s.Duration = v
	case "steps":
		s.Steps = int(v)
	case "terms":
		s.Terms = int(v)
	case "vx", "vy", "vz":
		s.Initial.Velocity[axes[name[1]]] = v
	case "wx", "wy", "wz":
		s.Initial.AngularVelocity[axes[name[1]]] = v
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, ErrInvalidScenario)
	}
	return nil
}
