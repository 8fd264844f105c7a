package config

import (
	"sort"
)

type Preset struct {
	Description string
	Forces      ForcesConfig
}

var Presets = map[string]Preset{
	"ideal": {
		Description: "gravity only",
		Forces:      ForcesConfig{Drag: "none", Density: "vacuum"},
	},
	"drag": {
		Description: "constant linear drag coefficient, sea-level air",
		Forces:      ForcesConfig{Drag: "constant", Density: "constant"},
	},
	"height-drag": {
		Description: "linear drag in barometric air",
		Forces:      ForcesConfig{Drag: "linear", Density: "barometric"},
	},
	"magnus": {
		Description: "Magnus lift without drag",
		Forces:      ForcesConfig{Drag: "none", Density: "vacuum", Magnus: true},
	},
	"dimpled": {
		Description: "rough ball: linear drag and Magnus lift in barometric air",
		Forces:      ForcesConfig{Drag: "linear", Density: "barometric", Magnus: true},
	},
	"smooth": {
		Description: "smooth ball: signed quadratic drag and Magnus lift in barometric air",
		Forces:      ForcesConfig{Drag: "quadratic", Density: "barometric", Magnus: true},
	},
	"smooth-unsigned": {
		Description: "smooth ball with the unsigned v² drag law",
		Forces:      ForcesConfig{Drag: "quadratic-unsigned", Density: "barometric", Magnus: true},
	},
}

// GetPreset returns the default configuration with the preset's forces, or
// nil for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Forces = p.Forces
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series is one curve of a comparison figure.
type Series struct {
	Label  string
	Preset string
	Color  string
	Dashed bool
}

type Figure struct {
	Name   string
	Title  string
	Series []Series
}

var Figures = map[string]Figure{
	"drag": {
		Name:  "drag",
		Title: "Projectile Motion of a Golf Ball with and without Drag Force",
		Series: []Series{
			{Label: "Without Drag", Preset: "ideal", Color: "blue", Dashed: true},
			{Label: "With Drag", Preset: "drag", Color: "green"},
		},
	},
	"magnus": {
		Name:  "magnus",
		Title: "Projectile Motion of a Golf Ball: How Magnus Force Affects Trajectory",
		Series: []Series{
			{Label: "With Magnus Force only", Preset: "magnus", Color: "red"},
			{Label: "Idealistic Trajectory", Preset: "ideal", Color: "blue", Dashed: true},
		},
	},
	"dimple": {
		Name:  "dimple",
		Title: "Projectile Motion of a Golf Ball: How Dimple Affects Trajectory",
		Series: []Series{
			{Label: "Idealistic Trajectory", Preset: "ideal", Color: "blue", Dashed: true},
			{Label: "Rough Ball with Drag and Magnus Force (with dimple)", Preset: "dimpled", Color: "green"},
			{Label: "Smooth Ball with Drag and Magnus Force", Preset: "smooth", Color: "red"},
		},
	},
}

func GetFigure(name string) (Figure, bool) {
	f, ok := Figures[name]
	return f, ok
}

func ListFigures() []string {
	names := make([]string, 0, len(Figures))
	for name := range Figures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
