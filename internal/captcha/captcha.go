package captcha

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/phalabot/internal/captcha Generator

// Alphabet is the pool challenge characters are drawn from
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the number of characters in a challenge
const DefaultLength = 5

// Generator produces challenge strings
type Generator interface {
	Generate() string
}

// Config for the challenge generator
type Config struct {
	// Optional seed for testing
	Seed int64

	// Length of generated challenges, DefaultLength when zero
	Length int
}

// RandomGenerator draws challenges from a seeded source.
// A single generator is shared by every concurrent verify session.
type RandomGenerator struct {
	mu     sync.Mutex
	random *rand.Rand
	length int
}

// New creates a new challenge generator
func New(cfg *Config) *RandomGenerator {
	var seed int64
	length := DefaultLength
	if cfg != nil {
		seed = cfg.Seed
		if cfg.Length > 0 {
			length = cfg.Length
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &RandomGenerator{
		random: rand.New(rand.NewSource(seed)),
		length: length,
	}
}

// Generate returns a fresh challenge, each character sampled uniformly with replacement
func (g *RandomGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, g.length)
	for i := range b {
		b[i] = Alphabet[g.random.Intn(len(Alphabet))]
	}
	return string(b)
}

// Verify reports whether response echoes challenge, ignoring case only.
// Surrounding whitespace is not trimmed.
func Verify(challenge, response string) bool {
	return strings.ToLower(challenge) == strings.ToLower(response)
}
