package config

import (
	"flag"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/diegok/gridiron/internal/physics"
)

// Default values for configuration
const (
	DefaultThrowerX      = 20.0
	DefaultThrowerY      = 26.0
	DefaultReleaseHeight = 2.97 // ~9 feet
	DefaultReceiverX     = 40.0
	DefaultReceiverY     = 26.0
	DefaultReceiverZ     = 2.97
	DefaultReceiverVX    = 3.0
	DefaultBallSpeed     = 17.08 // ~35 mph
	DefaultHeading       = "target"
	DefaultStep          = 0.01
	DefaultCatchRadius   = 1.0
	DefaultLogLevel      = "info"
	MaxWorkers           = 64
)

// ErrModeConflict is returned when mutually exclusive options are combined.
var ErrModeConflict = errors.New("conflicting options")

// Spot is a position on the field.
type Spot struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Runner is a receiver at release: where they are, how high they catch and
// how fast they are running.
type Runner struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
}

// Search tunes the interception solver.
type Search struct {
	MinTime   float64 `yaml:"min_time"`
	MaxTime   float64 `yaml:"max_time"`
	Samples   int     `yaml:"samples"`
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`
}

// Scenario is a single throw. It can be loaded from a YAML file and
// overridden from the command line.
type Scenario struct {
	Thrower       Spot    `yaml:"thrower"`
	Receiver      Runner  `yaml:"receiver"`
	BallSpeed     float64 `yaml:"ball_speed"`
	ReleaseHeight float64 `yaml:"release_height"`
	Heading       string  `yaml:"heading"`
	Step          float64 `yaml:"step"`
	CatchRadius   float64 `yaml:"catch_radius"`
	Search        Search  `yaml:"search"`
}

// Config holds the application configuration
type Config struct {
	Scenario

	ScenarioPath string
	RecordPath   string
	ReplayPath   string
	TextMode     bool
	Mute         bool
	LogLevel     string
	LogFile      string
}

// DefaultScenario is the leading pass down the middle of the field.
func DefaultScenario() Scenario {
	return Scenario{
		Thrower: Spot{X: DefaultThrowerX, Y: DefaultThrowerY},
		Receiver: Runner{
			Name: "WR",
			X:    DefaultReceiverX,
			Y:    DefaultReceiverY,
			Z:    DefaultReceiverZ,
			VX:   DefaultReceiverVX,
		},
		BallSpeed:     DefaultBallSpeed,
		ReleaseHeight: DefaultReleaseHeight,
		Heading:       DefaultHeading,
		Step:          DefaultStep,
		CatchRadius:   DefaultCatchRadius,
		Search: Search{
			MinTime:   physics.DefaultMinTime,
			MaxTime:   physics.DefaultMaxTime,
			Samples:   physics.DefaultSamples,
			Tolerance: physics.DefaultTolerance,
			Workers:   1,
		},
	}
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{Scenario: DefaultScenario()}
	s := &cfg.Scenario

	fs := flag.NewFlagSet("gridiron", flag.ContinueOnError)

	fs.StringVar(&cfg.ScenarioPath, "scenario", "", "YAML scenario file")
	fs.Float64Var(&s.Thrower.X, "qb-x", s.Thrower.X, "thrower downfield position (yards)")
	fs.Float64Var(&s.Thrower.Y, "qb-y", s.Thrower.Y, "thrower lateral position (yards)")
	fs.Float64Var(&s.ReleaseHeight, "release-height", s.ReleaseHeight, "ball release height (yards)")
	fs.StringVar(&s.Receiver.Name, "wr-name", s.Receiver.Name, "receiver name")
	fs.Float64Var(&s.Receiver.X, "wr-x", s.Receiver.X, "receiver downfield position (yards)")
	fs.Float64Var(&s.Receiver.Y, "wr-y", s.Receiver.Y, "receiver lateral position (yards)")
	fs.Float64Var(&s.Receiver.Z, "wr-z", s.Receiver.Z, "receiver catch height (yards)")
	fs.Float64Var(&s.Receiver.VX, "wr-vx", s.Receiver.VX, "receiver downfield speed (yd/s)")
	fs.Float64Var(&s.Receiver.VY, "wr-vy", s.Receiver.VY, "receiver lateral speed (yd/s)")
	fs.Float64Var(&s.BallSpeed, "speed", s.BallSpeed, "ball speed (yd/s)")
	fs.StringVar(&s.Heading, "heading", s.Heading, "ball heading: target or downfield")
	fs.Float64Var(&s.Step, "dt", s.Step, "simulation time step (seconds)")
	fs.Float64Var(&s.CatchRadius, "catch-radius", s.CatchRadius, "ball-to-hands distance that counts as a catch (yards)")
	fs.Float64Var(&s.Search.MinTime, "min-time", s.Search.MinTime, "earliest flight time searched (seconds)")
	fs.Float64Var(&s.Search.MaxTime, "max-time", s.Search.MaxTime, "latest flight time searched (seconds)")
	fs.IntVar(&s.Search.Samples, "samples", s.Search.Samples, "flight times sampled by the solver")
	fs.Float64Var(&s.Search.Tolerance, "tolerance", s.Search.Tolerance, "accepted speed mismatch (yd/s)")
	fs.IntVar(&s.Search.Workers, "workers", s.Search.Workers, "solver goroutines")
	fs.StringVar(&cfg.RecordPath, "record", "", "write the play to this file")
	fs.StringVar(&cfg.ReplayPath, "replay", "", "replay a recorded play")
	fs.BoolVar(&cfg.TextMode, "text", false, "print a text report instead of the field view")
	fs.BoolVar(&cfg.Mute, "mute", false, "disable sound")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", "", "write logs to this file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.checkModes(); err != nil {
		return nil, err
	}

	if cfg.ScenarioPath != "" {
		if err := applyScenarioFile(fs, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyScenarioFile loads the file over the defaults, then re-applies every
// flag given on the command line so flags win.
func applyScenarioFile(fs *flag.FlagSet, cfg *Config) error {
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	scenario, err := LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	cfg.Scenario = scenario

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return errors.Wrapf(err, "re-apply --%s", name)
		}
	}
	return nil
}

// LoadScenario reads a YAML scenario. Fields missing from the file keep
// their defaults; unknown fields are an error.
func LoadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "open scenario")
	}
	defer f.Close()

	s := DefaultScenario()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, errors.Wrapf(err, "parse scenario %s", path)
	}
	return s, nil
}

// Validate checks the configuration for values the simulation can't use.
func (c *Config) Validate() error {
	if err := c.checkModes(); err != nil {
		return err
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	if c.ReplayPath != "" {
		return nil
	}
	return c.Scenario.Validate()
}

func (c *Config) checkModes() error {
	if c.RecordPath != "" && c.ReplayPath != "" {
		return errors.Wrap(ErrModeConflict, "cannot specify both --record and --replay")
	}
	if c.ReplayPath != "" && c.ScenarioPath != "" {
		return errors.Wrap(ErrModeConflict, "cannot specify both --scenario and --replay")
	}
	return nil
}

// Validate checks a scenario on its own.
func (s Scenario) Validate() error {
	for name, v := range map[string]float64{
		"qb-x": s.Thrower.X, "qb-y": s.Thrower.Y,
		"wr-x": s.Receiver.X, "wr-y": s.Receiver.Y, "wr-z": s.Receiver.Z,
		"wr-vx": s.Receiver.VX, "wr-vy": s.Receiver.VY,
		"speed": s.BallSpeed, "release-height": s.ReleaseHeight,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("%s must be a finite number", name)
		}
	}

	if s.BallSpeed <= 0 {
		return errors.Errorf("speed must be positive, got %g", s.BallSpeed)
	}
	if s.ReleaseHeight < 0 {
		return errors.Errorf("release height must not be negative, got %g", s.ReleaseHeight)
	}
	if s.Receiver.Z < 0 {
		return errors.Errorf("receiver catch height must not be negative, got %g", s.Receiver.Z)
	}
	if _, err := physics.ParseHeadingMode(s.Heading); err != nil {
		return err
	}
	if s.Step <= 0 || s.Step > 1 {
		return errors.Errorf("dt must be in (0, 1], got %g", s.Step)
	}
	if s.CatchRadius <= 0 {
		return errors.Errorf("catch radius must be positive, got %g", s.CatchRadius)
	}

	search := s.Search
	if search.MinTime <= 0 || search.MaxTime < search.MinTime {
		return errors.Errorf("search window must satisfy 0 < min-time <= max-time, got [%g, %g]", search.MinTime, search.MaxTime)
	}
	if search.Samples < 1 {
		return errors.Errorf("samples must be at least 1, got %d", search.Samples)
	}
	if search.Tolerance <= 0 {
		return errors.Errorf("tolerance must be positive, got %g", search.Tolerance)
	}
	if search.Workers < 1 || search.Workers > MaxWorkers {
		return errors.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, search.Workers)
	}
	return nil
}

// Solver builds the interception solver for this scenario.
func (s Scenario) Solver() physics.Solver {
	return physics.Solver{
		MinTime:   s.Search.MinTime,
		MaxTime:   s.Search.MaxTime,
		Samples:   s.Search.Samples,
		Tolerance: s.Search.Tolerance,
		Workers:   s.Search.Workers,
	}
}

// HeadingMode returns the parsed heading. Validate has already rejected
// unknown values, so this falls back to HeadingToTarget silently.
func (s Scenario) HeadingMode() physics.HeadingMode {
	m, err := physics.ParseHeadingMode(s.Heading)
	if err != nil {
		return physics.HeadingToTarget
	}
	return m
}
