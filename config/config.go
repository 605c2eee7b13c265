// Package config provides configuration loading and access for the collision model.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all model parameters.
type Config struct {
	Seed    uint64        `yaml:"seed"`
	Field   FieldConfig   `yaml:"field"`
	Nucleon NucleonConfig `yaml:"nucleon"`
	Output  OutputConfig  `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds substructure-field synthesis parameters.
type FieldConfig struct {
	GridN1            int     `yaml:"grid_n1"`             // grid cells along x
	GridN2            int     `yaml:"grid_n2"`             // grid cells along y
	Length1           float64 `yaml:"length1"`             // physical extent along x [fm]
	Length2           float64 `yaml:"length2"`             // physical extent along y [fm]
	CorrelationLength float64 `yaml:"correlation_length"`  // target correlation length [fm]
	Variance          float64 `yaml:"variance"`            // gamma shape of the field marginal
	MarginalTableSize int     `yaml:"marginal_table_size"` // quantile table resolution
}

// NucleonConfig holds thickness-profile and participation parameters.
type NucleonConfig struct {
	Width             float64 `yaml:"width"`               // Gaussian thickness width [fm]
	TruncFactor       float64 `yaml:"trunc_factor"`        // truncation radius in units of width
	MaxImpactFactor   float64 `yaml:"max_impact_factor"`   // max impact parameter in units of width
	CrossSectionParam float64 `yaml:"cross_section_param"` // calibrated externally to sigma_nn
	FluctShape        float64 `yaml:"fluct_shape"`         // gamma shape of multiplicity fluctuations
}

// OutputConfig holds telemetry output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // output directory ("" = disabled)
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	CellSize1    float64 // Length1 / GridN1
	CellSize2    float64 // Length2 / GridN2
	CellArea     float64 // CellSize1 * CellSize2
	WidthSqr     float64
	TruncRadius  float64
	TruncSqr     float64 // (TruncFactor * Width)^2
	MaxImpactSqr float64 // (MaxImpactFactor * Width)^2
	KernelCut    int     // overlap kernel half-window in grid cells
	AnchorMargin int     // anchor indices stay this far from the grid edge
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects non-physical parameters before any table or field is built.
func (c *Config) Validate() error {
	f := &c.Field
	if f.GridN1 <= 0 || f.GridN2 <= 0 {
		return fmt.Errorf("config: grid size must be positive, got %dx%d", f.GridN1, f.GridN2)
	}
	if f.Length1 <= 0 || f.Length2 <= 0 {
		return fmt.Errorf("config: domain lengths must be positive, got %gx%g", f.Length1, f.Length2)
	}
	if f.CorrelationLength <= 0 {
		return fmt.Errorf("config: correlation length must be positive, got %g", f.CorrelationLength)
	}
	if f.Variance <= 0 {
		return fmt.Errorf("config: field variance (gamma shape) must be positive, got %g", f.Variance)
	}
	if f.MarginalTableSize < 2 {
		return fmt.Errorf("config: marginal table size must be at least 2, got %d", f.MarginalTableSize)
	}

	n := &c.Nucleon
	if n.Width <= 0 {
		return fmt.Errorf("config: nucleon width must be positive, got %g", n.Width)
	}
	if n.TruncFactor <= 0 {
		return fmt.Errorf("config: truncation factor must be positive, got %g", n.TruncFactor)
	}
	if n.MaxImpactFactor <= 0 {
		return fmt.Errorf("config: max impact factor must be positive, got %g", n.MaxImpactFactor)
	}
	if n.FluctShape <= 0 {
		return fmt.Errorf("config: fluctuation shape must be positive, got %g", n.FluctShape)
	}

	// The overlap kernel window must fit inside the grid with its anchor margin.
	cut := kernelCut(n.Width, f.GridN1, f.Length1)
	if 2*cut >= f.GridN1 || 2*cut >= f.GridN2 {
		return fmt.Errorf("config: kernel window %d does not fit grid %dx%d", cut, f.GridN1, f.GridN2)
	}
	return nil
}

// kernelCut is the overlap kernel half-window: three nucleon widths in grid cells.
func kernelCut(width float64, n1 int, l1 float64) int {
	cut := int(3.0 * width * float64(n1) / l1)
	if cut < 1 {
		cut = 1
	}
	return cut
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	d := &c.Derived
	d.CellSize1 = c.Field.Length1 / float64(c.Field.GridN1)
	d.CellSize2 = c.Field.Length2 / float64(c.Field.GridN2)
	d.CellArea = d.CellSize1 * d.CellSize2

	w := c.Nucleon.Width
	d.WidthSqr = w * w
	d.TruncRadius = c.Nucleon.TruncFactor * w
	d.TruncSqr = d.TruncRadius * d.TruncRadius
	maxImpact := c.Nucleon.MaxImpactFactor * w
	d.MaxImpactSqr = maxImpact * maxImpact

	d.KernelCut = kernelCut(w, c.Field.GridN1, c.Field.Length1)
	d.AnchorMargin = d.KernelCut
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
