// Package config loads the server settings.
//
// Values come from, in increasing priority: built-in defaults, .env style
// files read with godotenv, and TILEROUTE_* environment variables.
// Missing files are skipped.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid indicates a setting that does not parse or is out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Prefix is the environment variable prefix.
const Prefix = "TILEROUTE_"

// Config holds every server setting.
type Config struct {
	Addr        string     // ADDR, listen address
	DataDir     string     // DATA_DIR, badger directory; empty keeps routes in memory
	MapFile     string     // MAP_FILE, ASCII map; empty uses the built-in demo map
	Company     int        // COMPANY, owner id the server builds as
	Balance     int64      // BALANCE, starting money; 0 means unlimited
	LogLevel    slog.Level // LOG_LEVEL, debug|info|warn|error
	GinMode     string     // GIN_MODE, debug|release|test
	CORSOrigins []string   // CORS_ORIGINS, comma separated; "*" allows all

	MaxLength     int  // MAX_LENGTH, default request max_length
	MaxParts      int  // MAX_PARTS, default request max_parts
	Canals        bool // CANALS, enables the canal fallback
	MaxIterations int  // MAX_ITERATIONS, per search
	StepBudget    int  // STEP_BUDGET, iterations per synchronous slice
	MaxCanalTiles int  // MAX_CANAL_TILES, 0 disables the dig pre-check
	BuoyStride    int  // BUOY_STRIDE, 0 disables buoys on commit

	TickInterval time.Duration // TICK_INTERVAL, scheduler period
	TickBudget   int           // TICK_BUDGET, iterations per job per tick
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		Company:       1,
		LogLevel:      slog.LevelInfo,
		GinMode:       "release",
		CORSOrigins:   []string{"*"},
		MaxLength:     256,
		MaxParts:      8,
		Canals:        true,
		MaxIterations: 20000,
		StepBudget:    1000,
		BuoyStride:    12,
		TickInterval:  100 * time.Millisecond,
		TickBudget:    500,
	}
}

// Load reads files (skipping missing ones) and the process environment.
func Load(files ...string) (Config, error) {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	values := map[string]string{}
	if len(present) > 0 {
		read, err := godotenv.Read(present...)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %v: %w", present, err)
		}
		values = read
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, Prefix) {
			values[k] = v
		}
	}
	return FromMap(values)
}

// FromMap applies TILEROUTE_* keys of m over Default and validates the result.
// Unknown keys are ignored.
func FromMap(m map[string]string) (Config, error) {
	c := Default()
	p := parser{m: m}

	p.str("ADDR", &c.Addr)
	p.str("DATA_DIR", &c.DataDir)
	p.str("MAP_FILE", &c.MapFile)
	p.str("GIN_MODE", &c.GinMode)
	p.integer("COMPANY", &c.Company)
	p.integer64("BALANCE", &c.Balance)
	p.level("LOG_LEVEL", &c.LogLevel)
	p.list("CORS_ORIGINS", &c.CORSOrigins)
	p.integer("MAX_LENGTH", &c.MaxLength)
	p.integer("MAX_PARTS", &c.MaxParts)
	p.boolean("CANALS", &c.Canals)
	p.integer("MAX_ITERATIONS", &c.MaxIterations)
	p.integer("STEP_BUDGET", &c.StepBudget)
	p.integer("MAX_CANAL_TILES", &c.MaxCanalTiles)
	p.integer("BUOY_STRIDE", &c.BuoyStride)
	p.duration("TICK_INTERVAL", &c.TickInterval)
	p.integer("TICK_BUDGET", &c.TickBudget)
	if p.err != nil {
		return Config{}, p.err
	}
	return c, c.Validate()
}

// Validate checks ranges.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		key string
	}{
		{c.Addr != "", "ADDR"},
		{c.Company > 0, "COMPANY"},
		{c.Balance >= 0, "BALANCE"},
		{c.MaxLength > 0, "MAX_LENGTH"},
		{c.MaxParts > 0, "MAX_PARTS"},
		{c.MaxIterations > 0, "MAX_ITERATIONS"},
		{c.StepBudget > 0, "STEP_BUDGET"},
		{c.MaxCanalTiles >= 0, "MAX_CANAL_TILES"},
		{c.BuoyStride >= 0, "BUOY_STRIDE"},
		{c.TickInterval > 0, "TICK_INTERVAL"},
		{c.TickBudget > 0, "TICK_BUDGET"},
		{c.GinMode == "debug" || c.GinMode == "release" || c.GinMode == "test", "GIN_MODE"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s%s out of range", ErrInvalid, Prefix, ch.key)
		}
	}
	return nil
}

// parser records the first error and skips later keys.
type parser struct {
	m   map[string]string
	err error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.m[Prefix+key]
	return strings.TrimSpace(v), ok
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, Prefix, key, v, err)
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) integer(key string, dst *int) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) integer64(key string, dst *int64) {
	if v, ok := p.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) boolean(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	if v, ok := p.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (p *parser) level(key string, dst *slog.Level) {
	if v, ok := p.get(key); ok {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = l
	}
}

func (p *parser) list(key string, dst *[]string) {
	if v, ok := p.get(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*dst = out
	}
}
