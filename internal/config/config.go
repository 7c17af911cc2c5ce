package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when no other file is named
const DefaultEnvFile = ".env"

// Config is the bot's runtime configuration
type Config struct {
	DiscordToken         string        `env:"DISCORD_TOKEN,required,notEmpty"`
	GuildID              string        `env:"DISCORD_GUILD_ID,required,notEmpty"`
	GeneralChannelID     string        `env:"DISCORD_GENERAL_CHANNEL,required,notEmpty"`
	BotCommandsChannelID string        `env:"DISCORD_BOT_COMMANDS_CHANNEL,required,notEmpty"`
	CommandPrefix        string        `env:"COMMAND_PREFIX" envDefault:"!"`
	VerifiedRole         string        `env:"VERIFIED_ROLE" envDefault:"verified"`
	ChallengeTimeout     time.Duration `env:"CHALLENGE_TIMEOUT" envDefault:"60s"`

	SubscanAPIKey        string        `env:"SUBSCAN_API,required,notEmpty"`
	SubscanURL           string        `env:"SUBSCAN_URL" envDefault:"https://khala.api.subscan.io"`
	PriceRefreshInterval time.Duration `env:"PRICE_REFRESH_INTERVAL" envDefault:"1h"`
	PriceHistoryDays     int           `env:"PRICE_HISTORY_DAYS" envDefault:"30"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// StatusAddr is the status server listen address, empty disables it
	StatusAddr string `env:"STATUS_ADDR" envDefault:":8080"`

	EventsTopic string `env:"EVENTS_TOPIC" envDefault:"phalabot.verification"`
}

// Load reads envFile into the process environment, then parses it. A missing
// default file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || envFile != DefaultEnvFile {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	if c.ChallengeTimeout <= 0 {
		return errors.New("CHALLENGE_TIMEOUT must be positive")
	}

	if c.PriceRefreshInterval <= 0 {
		return errors.New("PRICE_REFRESH_INTERVAL must be positive")
	}

	if c.PriceHistoryDays <= 0 {
		return errors.New("PRICE_HISTORY_DAYS must be positive")
	}

	if c.VerifiedRole == "" {
		return errors.New("VERIFIED_ROLE cannot be empty")
	}

	if c.CommandPrefix == "" {
		return errors.New("COMMAND_PREFIX cannot be empty")
	}

	return nil
}
