package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/quickly-pick-slack/auth"
)

type Config struct {
	Port          int
	BotToken      string
	SigningSecret string
	StoreBackend  string
	VoterSalt     string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollbot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "store", "", "Poll store backend (memory or sqlite)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Slack bot token (prefer env)")
	fs.StringVar(&cfg.SigningSecret, "signing-secret", "", "Slack signing secret (prefer env)")
	fs.StringVar(&cfg.VoterSalt, "voter-salt", "", "Salt for anonymous voter keys (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("POLL_STORE")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = "memory"
		}
	}
	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "sqlite" {
		return Config{}, fmt.Errorf("invalid store backend %q (use memory or sqlite)", cfg.StoreBackend)
	}

	// Secrets - MUST be provided
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("SLACK_BOT_TOKEN")
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("SLACK_BOT_TOKEN required")
	}

	if cfg.SigningSecret == "" {
		cfg.SigningSecret = os.Getenv("SLACK_SIGNING_SECRET")
	}
	if cfg.SigningSecret == "" {
		return Config{}, errors.New("SLACK_SIGNING_SECRET required")
	}

	// Anonymous voter keys only need to be stable for the life of the process
	if cfg.VoterSalt == "" {
		cfg.VoterSalt = os.Getenv("VOTER_HASH_SALT")
	}
	if cfg.VoterSalt == "" {
		salt, err := auth.GenerateID(32)
		if err != nil {
			return Config{}, err
		}
		cfg.VoterSalt = salt
	}

	return cfg, nil
}
