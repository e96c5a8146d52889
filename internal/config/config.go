// Package config loads the settings of the racquet tool.
//
// The settings are read in increasing precedence from the built-in
// defaults, a YAML file, a .env file and RACQUET_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/pairing"
	"github.com/ezBadminton/racquet/schedule"
)

const EnvPrefix = "RACQUET_"

var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultFile is the config file that is used when no other is given.
var DefaultFile = filepath.Join(xdg.ConfigHome, "racquet", "config.yaml")

// EnvFile holds environment variables that are loaded before the
// RACQUET_* variables are read.
const EnvFile = ".env"

type Config struct {
	Points    core.PointsConfig    `yaml:"points"`
	Scheduler core.SchedulerConfig `yaml:"scheduler"`
	Search    Search               `yaml:"search"`
	Server    Server               `yaml:"server"`
}

// Search tunes the randomized pairing generators.
type Search struct {
	// Seed of the generators, random when zero
	Seed              int64 `yaml:"seed"`
	AmericanoAttempts int   `yaml:"americanoAttempts"`
	LeagueAttempts    int   `yaml:"leagueAttempts"`
}

type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

func Default() *Config {
	return &Config{
		Points:    core.DefaultPointsConfig(),
		Scheduler: core.DefaultSchedulerConfig(),
		Search: Search{
			AmericanoAttempts: pairing.DefaultAmericanoAttempts,
			LeagueAttempts:    pairing.DefaultLeagueAttempts,
		},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the configuration. An empty path reads DefaultFile
// when it exists. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := config.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	if err := config.readEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Sets the variables of the env file that are not set yet.
// A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file %v: %w", path, err)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config file %v: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// Overrides the settings that have an environment variable set
func (c *Config) readEnv(lookup lookupFunc) error {
	ints := map[string]*int{
		"POINTS_WIN_2_0":     &c.Points.Win2_0,
		"POINTS_LOSS_2_0":    &c.Points.Loss2_0,
		"POINTS_WIN_2_1":     &c.Points.Win2_1,
		"POINTS_LOSS_2_1":    &c.Points.Loss2_1,
		"POINTS_DRAW":        &c.Points.Draw,
		"COURTS":             &c.Scheduler.Courts,
		"SLOT_MINUTES":       &c.Scheduler.SlotDurationMinutes,
		"REST_MINUTES":       &c.Scheduler.RestMinutes,
		"STEP_MINUTES":       &c.Scheduler.StepMinutes,
		"SEARCH_DAYS":        &c.Scheduler.SearchDays,
		"AMERICANO_ATTEMPTS": &c.Search.AmericanoAttempts,
		"LEAGUE_ATTEMPTS":    &c.Search.LeagueAttempts,
	}
	for key, target := range ints {
		value, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v%v environment variable: %w", EnvPrefix, key, err)
		}
		*target = n
	}

	if value, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %vSEED environment variable: %w", EnvPrefix, err)
		}
		c.Search.Seed = seed
	}
	if value, ok := lookup(EnvPrefix + "ADDR"); ok {
		c.Server.Addr = value
	}
	if value, ok := lookup(EnvPrefix + "ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = strings.Split(value, ",")
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Scheduler.Courts < 0 {
		return fmt.Errorf("%w: negative number of courts", ErrInvalidConfig)
	}
	if c.Scheduler.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: the slot duration has to be positive", ErrInvalidConfig)
	}
	if c.Scheduler.RestMinutes < 0 {
		return fmt.Errorf("%w: negative rest time", ErrInvalidConfig)
	}
	if err := schedule.ValidateTimeWindows(c.Scheduler.TimeWindows); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
