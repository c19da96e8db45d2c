package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
	"github.com/san-kum/ratgrav/internal/sim"
)

const (
	DefaultTicks   = 3
	DefaultWorkers = 4
	DefaultPolicy  = "sequential"
)

var (
	ErrNoBodies      = errors.New("config: at least one body is required")
	ErrDuplicateName = errors.New("config: duplicate body name")
	ErrInvalidName   = errors.New("config: invalid scenario name")
)

// Config is a scenario. G is exact: the file may give it as an integer, a
// fraction ("1/3") or a decimal, which is read exactly as written, so
// "6.674e-11" is 3337/50000000000000 and not the nearest float64.
type Config struct {
	Name    string         `yaml:"name"`
	G       exact.Rational `yaml:"g"`
	Ticks   int            `yaml:"ticks"`
	Policy  string         `yaml:"policy"`
	Workers int            `yaml:"workers"`
	Bodies  []BodyConfig   `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position,flow"`
}

// DefaultConfig is the Earth/Moon scenario.
func DefaultConfig() *Config {
	return &Config{
		Name:    "earth_moon",
		G:       gravity.DefaultG(),
		Ticks:   DefaultTicks,
		Policy:  DefaultPolicy,
		Workers: DefaultWorkers,
		Bodies: []BodyConfig{
			{Name: "moon", Mass: 7.342e22, Position: [3]float64{362600e3, 0, 0}},
			{Name: "earth", Mass: 5.97e24, Position: [3]float64{1, 0, 0}},
		},
	}
}

// Load reads a YAML scenario. Fields missing from the file keep their
// DefaultConfig values, except bodies, which replace the defaults outright
// when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValidateName rejects scenario names that cannot serve as a run
// directory prefix: empty names and names that could leave the data
// directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if len(c.Bodies) == 0 {
		return ErrNoBodies
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if _, err := gravity.ParsePolicy(c.Policy); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if seen[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// BuildBodies converts the body list to exact bodies, in file order.
func (c *Config) BuildBodies() ([]*gravity.Body, error) {
	bodies := make([]*gravity.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		b, err := gravity.NewBody(bc.Name, bc.Mass, bc.Position[0], bc.Position[1], bc.Position[2])
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func (c *Config) GravityConfig() (gravity.Config, error) {
	policy, err := gravity.ParsePolicy(c.Policy)
	if err != nil {
		return gravity.Config{}, err
	}
	return gravity.Config{G: c.G, Policy: policy, Workers: c.Workers}, nil
}

// BuildSystem validates the config and assembles a ready-to-step system.
func (c *Config) BuildSystem() (*gravity.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gcfg, err := c.GravityConfig()
	if err != nil {
		return nil, err
	}
	bodies, err := c.BuildBodies()
	if err != nil {
		return nil, err
	}
	return gravity.NewSystem(bodies, gcfg)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Ticks: c.Ticks}
}

// Clone returns a deep copy, so presets can be modified by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	copy(out.Bodies, c.Bodies)
	return &out
}
