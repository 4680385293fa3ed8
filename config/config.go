package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Floors           int           `yaml:"floors"`
	Capacity         int           `yaml:"capacity"`
	MovePerFloor     time.Duration `yaml:"movePerFloor"`
	LoadingDuration  time.Duration `yaml:"loadingDuration"`
	SpawnIntervalMin time.Duration `yaml:"spawnIntervalMin"`
	SpawnIntervalMax time.Duration `yaml:"spawnIntervalMax"`
	MaxQueueLength   int           `yaml:"maxQueueLength"`
	MonitorInterval  time.Duration `yaml:"monitorInterval"`
	Seed             uint64        `yaml:"seed"`
}

func Default() Config {
	return Config{
		Floors:           10,
		Capacity:         5,
		MovePerFloor:     1 * time.Second,
		LoadingDuration:  1 * time.Second,
		SpawnIntervalMin: 2 * time.Second,
		SpawnIntervalMax: 6 * time.Second,
		MaxQueueLength:   5,
		MonitorInterval:  5 * time.Second,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Floors < 2:
		return fmt.Errorf("%w: floors must be at least 2, was %d", ErrInvalid, c.Floors)
	case c.Capacity < 1:
		return fmt.Errorf("%w: capacity must be positive, was %d", ErrInvalid, c.Capacity)
	case c.MaxQueueLength < 1:
		return fmt.Errorf("%w: max queue length must be positive, was %d", ErrInvalid, c.MaxQueueLength)
	case c.MovePerFloor < 0 || c.LoadingDuration < 0 || c.SpawnIntervalMin < 0 || c.MonitorInterval < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	case c.SpawnIntervalMax <= 0:
		return fmt.Errorf("%w: spawn interval maximum must be positive, was %v", ErrInvalid, c.SpawnIntervalMax)
	case c.SpawnIntervalMin > c.SpawnIntervalMax:
		return fmt.Errorf("%w: spawn interval [%v, %v] is empty", ErrInvalid, c.SpawnIntervalMin, c.SpawnIntervalMax)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

var envKeys = map[string]func(c *Config, v string) error{
	"ELEVSIM_FLOORS":           intSetter(func(c *Config) *int { return &c.Floors }),
	"ELEVSIM_CAPACITY":         intSetter(func(c *Config) *int { return &c.Capacity }),
	"ELEVSIM_MAX_QUEUE":        intSetter(func(c *Config) *int { return &c.MaxQueueLength }),
	"ELEVSIM_MOVE_PER_FLOOR":   durationSetter(func(c *Config) *time.Duration { return &c.MovePerFloor }),
	"ELEVSIM_LOADING_DURATION": durationSetter(func(c *Config) *time.Duration { return &c.LoadingDuration }),
	"ELEVSIM_SPAWN_MIN":        durationSetter(func(c *Config) *time.Duration { return &c.SpawnIntervalMin }),
	"ELEVSIM_SPAWN_MAX":        durationSetter(func(c *Config) *time.Duration { return &c.SpawnIntervalMax }),
	"ELEVSIM_MONITOR_INTERVAL": durationSetter(func(c *Config) *time.Duration { return &c.MonitorInterval }),
	"ELEVSIM_SEED": func(c *Config, v string) error {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		c.Seed = seed
		return nil
	},
}

// ApplyEnvFile overlays the ELEVSIM_* keys of a .env file onto c. Unknown
// keys are ignored.
func (c *Config) ApplyEnvFile(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}

	for key, value := range env {
		set, ok := envKeys[key]
		if !ok {
			continue
		}
		if err := set(c, value); err != nil {
			return fmt.Errorf("%s in %s: %w", key, path, err)
		}
	}
	return nil
}

func intSetter(field func(c *Config) *int) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func durationSetter(field func(c *Config) *time.Duration) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

// Flags binds command line flags for every setting. Values given on the
// command line win over the config and env files.
type Flags struct {
	ConfigPath string
	EnvPath    string

	fs     *flag.FlagSet
	values Config
}

func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}

	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&f.EnvPath, "env", "", ".env file with ELEVSIM_* overrides")
	fs.IntVar(&f.values.Floors, "floors", d.Floors, "number of floors")
	fs.IntVar(&f.values.Capacity, "capacity", d.Capacity, "elevator capacity")
	fs.DurationVar(&f.values.MovePerFloor, "move-per-floor", d.MovePerFloor, "time to travel one floor")
	fs.DurationVar(&f.values.LoadingDuration, "loading", d.LoadingDuration, "time to load or unload")
	fs.DurationVar(&f.values.SpawnIntervalMin, "spawn-min", d.SpawnIntervalMin, "minimum time between arrivals on a floor")
	fs.DurationVar(&f.values.SpawnIntervalMax, "spawn-max", d.SpawnIntervalMax, "maximum time between arrivals on a floor")
	fs.IntVar(&f.values.MaxQueueLength, "max-queue", d.MaxQueueLength, "maximum passengers waiting per floor")
	fs.DurationVar(&f.values.MonitorInterval, "monitor", d.MonitorInterval, "occupancy report interval, 0 disables")
	fs.Uint64Var(&f.values.Seed, "seed", d.Seed, "random seed, 0 picks one from the clock")

	return f
}

var flagFields = map[string]func(dst, src *Config){
	"floors":         func(dst, src *Config) { dst.Floors = src.Floors },
	"capacity":       func(dst, src *Config) { dst.Capacity = src.Capacity },
	"move-per-floor": func(dst, src *Config) { dst.MovePerFloor = src.MovePerFloor },
	"loading":        func(dst, src *Config) { dst.LoadingDuration = src.LoadingDuration },
	"spawn-min":      func(dst, src *Config) { dst.SpawnIntervalMin = src.SpawnIntervalMin },
	"spawn-max":      func(dst, src *Config) { dst.SpawnIntervalMax = src.SpawnIntervalMax },
	"max-queue":      func(dst, src *Config) { dst.MaxQueueLength = src.MaxQueueLength },
	"monitor":        func(dst, src *Config) { dst.MonitorInterval = src.MonitorInterval },
	"seed":           func(dst, src *Config) { dst.Seed = src.Seed },
}

// Resolve builds the final config: defaults, then the config file, then the
// env file, then flags set explicitly. Call it after the flag set is parsed.
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()

	if f.ConfigPath != "" {
		if err := cfg.LoadFile(f.ConfigPath); err != nil {
			return Config{}, err
		}
	}
	if f.EnvPath != "" {
		if err := cfg.ApplyEnvFile(f.EnvPath); err != nil {
			return Config{}, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		if apply, ok := flagFields[fl.Name]; ok {
			apply(&cfg, &f.values)
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
