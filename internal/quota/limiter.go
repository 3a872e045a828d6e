package quota

import (
	"fmt"
	"time"
)

// Limiter caps how many decks one caller may generate per window
type Limiter struct {
	config Config
}

// Config defines generation quota rules
type Config struct {
	MaxGenerations int           // per window
	Window         time.Duration // counting window
}

// DefaultConfig returns the default generation quota
func DefaultConfig() Config {
	return Config{
		MaxGenerations: 30,
		Window:         time.Hour,
	}
}

// NewLimiter creates a Limiter; zero config values fall back to defaults
func NewLimiter(config Config) *Limiter {
	def := DefaultConfig()
	if config.MaxGenerations <= 0 {
		config.MaxGenerations = def.MaxGenerations
	}
	if config.Window <= 0 {
		config.Window = def.Window
	}
	return &Limiter{config: config}
}

// Allow counts one generation attempt for the identity and reports whether
// it stays inside the quota. Without Redis the limiter degrades to allowing
// everything.
func (l *Limiter) Allow(identity string) (bool, error) {
	client := GetRedisClient()
	if client == nil {
		return true, nil
	}

	key := fmt.Sprintf("quota:generate:%s", identity)

	// Increment count
	count, err := client.Incr(GetContext(), key).Result()
	if err != nil {
		return false, err
	}

	// Set expiration if first time
	if count == 1 {
		client.Expire(GetContext(), key, l.config.Window)
	}

	return count <= int64(l.config.MaxGenerations), nil
}
