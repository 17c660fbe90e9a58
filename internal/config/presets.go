package config

import "sort"

const gravity = 9.81

func box() ShapeConfig {
	return ShapeConfig{Kind: "box", N: DefaultBoxN, Size: Vec{1, 1, 1}, Origin: Vec{-0.5, -0.5, -0.5}}
}

func weight(mass float64) LoadGroup {
	return LoadGroup{Name: "gravity", Forces: []Force{{Force: Vec{0, 0, -mass * gravity}, Relative: true}}}
}

var Presets = map[string]*Scenario{
	"free_fall": {
		Name: "free_fall", Description: "box falling under gravity",
		Mass: 2, Shape: box(), Duration: 1, Steps: 100, Terms: 10,
		Loads: []LoadGroup{weight(2)},
	},
	"drift": {
		Name: "drift", Description: "force-free translation",
		Mass: 1, Shape: box(), Duration: 2, Steps: 200, Terms: 10,
		Initial: InitialConfig{Velocity: Vec{1, 0.5, 0}},
	},
	"spin": {
		Name: "spin", Description: "box spinning about z",
		Mass: 1, Shape: box(), Duration: 3, Steps: 300, Terms: 10,
		Initial: InitialConfig{AngularVelocity: Vec{0, 0, 2}},
	},
	"push": {
		Name: "push", Description: "off-centre push under gravity",
		Mass: 1, Shape: box(), Duration: 1, Steps: 100, Terms: 10,
		Loads: []LoadGroup{
			weight(1),
			{Name: "push", Forces: []Force{{Force: Vec{5, 0, 0}, Point: Vec{0.5, 0.5, 0.5}, Relative: true}}},
		},
	},
	"disc_spin": {
		Name: "disc_spin", Description: "disc with a tangential force",
		Mass: 1, Duration: 2, Steps: 200, Terms: 12,
		Shape:   ShapeConfig{Kind: "disc", Radius: 1, Rings: DefaultRings},
		Initial: InitialConfig{AngularVelocity: Vec{0, 0, 3}},
		Loads: []LoadGroup{
			{Name: "tangent", Forces: []Force{{Force: Vec{0, 2, 0}, Point: Vec{1, 0, 0}, Relative: true}}},
		},
	},
	"cylinder_tumble": {
		Name: "cylinder_tumble", Description: "cylinder kicked at the top",
		Mass: 3, Duration: 2, Steps: 200, Terms: 12,
		Shape: ShapeConfig{Kind: "cylinder", Radius: 0.5, Height: 2, Rings: 3, Layers: DefaultLayers, Origin: Vec{0, 0, -1}},
		Loads: []LoadGroup{
			weight(3),
			{Name: "kick", Forces: []Force{{Force: Vec{1, 0, 0}, Point: Vec{0, 0, 1}, Relative: true}}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
