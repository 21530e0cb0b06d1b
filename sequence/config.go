package sequence

import (
	"fmt"

	"github.com/arloliu/segseq/internal/options"
	"github.com/arloliu/segseq/logging"
)

// ReplacePolicy selects how ReplaceSlot adjusts the prefix index.
type ReplacePolicy uint8

const (
	// ReplaceAdditive adds the new segment length after the replaced slot and keeps
	// the length reserved by the removed segment. The total grows by len(values).
	ReplaceAdditive ReplacePolicy = iota

	// ReplaceReuse sets the replaced slot's reserved length to len(values).
	ReplaceReuse
)

func (p ReplacePolicy) String() string {
	switch p {
	case ReplaceAdditive:
		return "Additive"
	case ReplaceReuse:
		return "Reuse"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is a known policy.
func (p ReplacePolicy) Valid() bool {
	return p <= ReplaceReuse
}

// Config holds container configuration shared by Sequence and the primitive store.
type Config struct {
	logger   *logging.Logger
	policy   ReplacePolicy
	capacity int
}

// Option configures a container.
type Option = options.Option[*Config]

// NewConfig applies opts over the defaults: additive replacement, no logging,
// and no preallocated slots.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger: logging.NoopLogger(),
		policy: ReplaceAdditive,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Policy returns the configured replace policy.
func (c *Config) Policy() ReplacePolicy {
	return c.policy
}

// Logger returns the configured logger.
func (c *Config) Logger() *logging.Logger {
	return c.logger
}

// Capacity returns the number of slots to preallocate.
func (c *Config) Capacity() int {
	return c.capacity
}

// WithReplacePolicy sets how ReplaceSlot adjusts the prefix index.
//
// Parameters:
//   - policy: ReplaceAdditive (default) or ReplaceReuse
//
// Returns:
//   - Option: Configuration option, failing with ErrInvalidOption for unknown policies
func WithReplacePolicy(policy ReplacePolicy) Option {
	return options.Named("replace policy", func(c *Config) error {
		if !policy.Valid() {
			return fmt.Errorf("%d is unknown", policy)
		}
		c.policy = policy

		return nil
	})
}

// WithLogger sets the logger used for slot mutations. A nil logger disables logging.
func WithLogger(logger *logging.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = logging.NoopLogger()
		}
		c.logger = logger
	})
}

// WithCapacity preallocates room for n physical slots.
func WithCapacity(n int) Option {
	return options.Named("capacity", func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%d is negative", n)
		}
		c.capacity = n

		return nil
	})
}
