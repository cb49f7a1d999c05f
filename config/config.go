package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spacemeshos/smutil"
)

// Strategy selects how the parser walks nested packets.
type Strategy string

const (
	// StrategyRecursive parses nested packets by recursive descent.
	StrategyRecursive Strategy = "recursive"
	// StrategyStack parses nested packets with an explicit work stack, so
	// nesting depth never grows the goroutine stack.
	StrategyStack Strategy = "stack"
)

const (
	MaxMaxDepth = 1 << 16
	MinMaxDepth = 1

	// In hex digits.
	MaxMaxInputLen = 1 << 24
	MinMaxInputLen = 1

	MaxWorkers = 1024
)

const (
	DefaultDataDirName = "data"

	DefaultMaxDepth    = 256
	DefaultMaxInputLen = 1 << 16
	DefaultStrategy    = StrategyRecursive
)

var DefaultDataDir = filepath.Join(smutil.GetUserHomeDirectory(), "bits", DefaultDataDirName)

type Config struct {
	DataDir string `mapstructure:"datadir"`

	// MaxDepth caps packet nesting. A lone literal has depth 1.
	MaxDepth int `mapstructure:"max-depth"`
	// MaxInputLen caps the number of hex digits in a single input line.
	MaxInputLen int      `mapstructure:"max-input-len"`
	Strategy    Strategy `mapstructure:"strategy"`

	// How many lines to process in parallel.
	// 0 - automatically detect
	Workers int `mapstructure:"workers"`

	LogDebug bool `mapstructure:"logdebug"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		MaxDepth:    DefaultMaxDepth,
		MaxInputLen: DefaultMaxInputLen,
		Strategy:    DefaultStrategy,
		Workers:     0,
	}
}

// NumWorkers returns the configured worker count, resolving 0 to the number
// of available CPUs.
func (cfg *Config) NumWorkers() int {
	if cfg.Workers == 0 {
		return runtime.NumCPU()
	}
	return cfg.Workers
}

func Validate(cfg *Config) error {
	if cfg.MaxDepth > MaxMaxDepth {
		return fmt.Errorf("invalid `MaxDepth`; expected: <= %d, given: %d", MaxMaxDepth, cfg.MaxDepth)
	}

	if cfg.MaxDepth < MinMaxDepth {
		return fmt.Errorf("invalid `MaxDepth`; expected: >= %d, given: %d", MinMaxDepth, cfg.MaxDepth)
	}

	if cfg.MaxInputLen > MaxMaxInputLen {
		return fmt.Errorf("invalid `MaxInputLen`; expected: <= %d, given: %d", MaxMaxInputLen, cfg.MaxInputLen)
	}

	if cfg.MaxInputLen < MinMaxInputLen {
		return fmt.Errorf("invalid `MaxInputLen`; expected: >= %d, given: %d", MinMaxInputLen, cfg.MaxInputLen)
	}

	if err := cfg.Strategy.Validate(); err != nil {
		return err
	}

	if cfg.Workers < 0 || cfg.Workers > MaxWorkers {
		return fmt.Errorf("invalid `Workers`; expected: within [0, %d], given: %d", MaxWorkers, cfg.Workers)
	}

	return nil
}

func (s Strategy) Validate() error {
	switch s {
	case StrategyRecursive, StrategyStack:
		return nil
	default:
		return fmt.Errorf("invalid `Strategy`; expected: %q or %q, given: %q", StrategyRecursive, StrategyStack, s)
	}
}
