package grid

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/SGpp/SGpp-sub016/storage"
)

// IntervalConfig is the YAML form of storage.Interval.
type IntervalConfig struct {
	Left           float64 `yaml:"left"`
	Right          float64 `yaml:"right"`
	DirichletLeft  bool    `yaml:"dirichletLeft,omitempty"`
	DirichletRight bool    `yaml:"dirichletRight,omitempty"`
}

// Config describes a regular grid to build.
type Config struct {
	Type        Type             `yaml:"type"`
	Dim         int              `yaml:"dim"`
	Level       storage.Level    `yaml:"level"`
	MaxLevel    storage.Level    `yaml:"maxLevel,omitempty"`
	BoundingBox []IntervalConfig `yaml:"boundingBox,omitempty"`
}

// LoadConfig decodes a single YAML document. Unknown keys are rejected.
//
// Errors: ErrInvalidConfig wrapping the decoder or validation failure.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "grid: decode config"), ErrInvalidConfig)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the description without building anything.
func (c Config) Validate() error {
	switch {
	case !c.Type.valid():
		return errors.Wrapf(ErrInvalidConfig, "type %d", int(c.Type))
	case c.Dim < 1:
		return errors.Wrapf(ErrInvalidConfig, "dim=%d", c.Dim)
	case c.Level < 1 || c.Level > storage.MaxLevel:
		return errors.Wrapf(ErrInvalidConfig, "level=%d", c.Level)
	case c.MaxLevel != 0 && (c.MaxLevel < c.Level || c.MaxLevel > storage.MaxLevel):
		return errors.Wrapf(ErrInvalidConfig, "maxLevel=%d level=%d", c.MaxLevel, c.Level)
	case len(c.BoundingBox) != 0 && len(c.BoundingBox) != c.Dim:
		return errors.Wrapf(ErrInvalidConfig, "%d bounding-box intervals for dim %d", len(c.BoundingBox), c.Dim)
	}
	return nil
}

// Build creates the grid, installs the bounding box and generates the
// regular grid of the configured level. Options override the config's
// MaxLevel when both are given.
func (c Config) Build(opts ...Option) (*Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.MaxLevel != 0 {
		opts = append([]Option{WithMaxLevel(c.MaxLevel)}, opts...)
	}
	g, err := New(c.Type, c.Dim, opts...)
	if err != nil {
		return nil, err
	}
	if len(c.BoundingBox) > 0 {
		ivs := make([]storage.Interval, len(c.BoundingBox))
		for d, iv := range c.BoundingBox {
			ivs[d] = storage.Interval{Left: iv.Left, Right: iv.Right, DirichletLeft: iv.DirichletLeft, DirichletRight: iv.DirichletRight}
		}
		bb, err := storage.NewBoundingBox(ivs...)
		if err != nil {
			return nil, errors.Mark(err, ErrInvalidConfig)
		}
		if !bb.IsUnitCube() {
			if err := g.Storage().SetBoundingBox(bb); err != nil {
				return nil, errors.Mark(err, ErrInvalidConfig)
			}
		}
	}
	gen, err := g.Generator()
	if err != nil {
		return nil, err
	}
	if err := gen.Regular(c.Level); err != nil {
		return nil, err
	}
	g.Logger().Sugar().Debugw("grid built from config",
		"type", c.Type.String(), "dim", c.Dim, "level", c.Level, "size", g.Size())
	return g, nil
}
