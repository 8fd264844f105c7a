package experiment

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/config"
)

var ErrUnknownExperiment = errors.New("experiment: unknown preset or figure")

// Registry resolves preset names, figure names and YAML files to
// configurations. Physics, launch and logging settings come from base.
type Registry struct {
	base   *config.Config
	logger *zap.Logger
}

func NewRegistry(base *config.Config, logger *zap.Logger) *Registry {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &Registry{base: base, logger: logger}
}

// Resolve returns the configuration for a preset name or a path to a YAML
// file. Files are loaded as-is; presets inherit everything but the forces
// from the base configuration.
func (r *Registry) Resolve(name string) (*config.Config, error) {
	if p, ok := config.Presets[name]; ok {
		cfg := *r.base
		cfg.Name = name
		cfg.Forces = p.Forces
		return &cfg, nil
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		if _, err := os.Stat(name); err != nil {
			return nil, err
		}
		return config.Load(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
}

// Figure resolves every series of a named comparison figure.
func (r *Registry) Figure(name string) (config.Figure, []*Experiment, error) {
	fig, ok := config.GetFigure(name)
	if !ok {
		return config.Figure{}, nil, fmt.Errorf("%w: figure %q", ErrUnknownExperiment, name)
	}
	exps := make([]*Experiment, 0, len(fig.Series))
	for _, s := range fig.Series {
		cfg, err := r.Resolve(s.Preset)
		if err != nil {
			return config.Figure{}, nil, fmt.Errorf("figure %q: %w", name, err)
		}
		exps = append(exps, New(cfg, r.logger))
	}
	return fig, exps, nil
}

// ListPresets returns preset names with their descriptions, sorted by name.
func (r *Registry) ListPresets() []string {
	names := config.ListPresets()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%-16s %s", name, config.Presets[name].Description))
	}
	sort.Strings(out)
	return out
}
