// Package config holds the functional-option configuration surface for a
// Codec: currently just the naive-timestamp policy.
package config

// NaivePolicy controls how a Codec handles a timestamp element with no
// attached UTC offset.
type NaivePolicy int

const (
	// NaiveReject fails with errs.ErrNaiveTimestamp. This is the default:
	// it keeps encoded output deterministic across hosts with different
	// local time zones.
	NaiveReject NaivePolicy = iota
	// NaiveAsUTC treats a naive timestamp as already being UTC, matching
	// data produced by tools that assume naive-means-UTC.
	NaiveAsUTC
)

// Config is the resolved configuration a Codec is built from.
type Config struct {
	NaivePolicy NaivePolicy
}

// defaultConfig returns the Config a Codec uses when no Options are given.
func defaultConfig() Config {
	return Config{NaivePolicy: NaiveReject}
}

// Option is a functional option for Config.
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(cfg *Config) { f(cfg) }

// WithRejectNaive makes the Codec reject naive timestamps with
// errs.ErrNaiveTimestamp. This is the default behavior; the option exists
// to let callers state the policy explicitly and to undo a prior
// WithNaiveAsUTC in the same option list.
func WithRejectNaive() Option {
	return optionFunc(func(cfg *Config) {
		cfg.NaivePolicy = NaiveReject
	})
}

// WithNaiveAsUTC makes the Codec treat naive timestamps as UTC instead of
// rejecting them.
func WithNaiveAsUTC() Option {
	return optionFunc(func(cfg *Config) {
		cfg.NaivePolicy = NaiveAsUTC
	})
}

// New resolves opts into a Config, starting from the default policy.
func New(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
