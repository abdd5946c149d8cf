package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Samy8769/mail-classifier-3/internal/arbiter"
)

type Config struct {
	ArbiterProvider string `yaml:"arbiter_provider"`
	ArbiterModel    string `yaml:"arbiter_model"`
	ArbiterBaseURL  string `yaml:"arbiter_base_url"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	AxisOverridePath    string   `yaml:"axis_override_path"`
	AxisOrder           []string `yaml:"axis_order"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`

	DBPath        string `yaml:"db_path"`
	MailboxDir    string `yaml:"mailbox_dir"`
	WatchSchedule string `yaml:"watch_schedule"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.ArbiterProvider, "ARBITER_PROVIDER")
	envOverride(&cfg.ArbiterModel, "ARBITER_MODEL")
	envOverride(&cfg.ArbiterBaseURL, "ARBITER_BASE_URL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.AxisOverridePath, "AXIS_OVERRIDE_PATH")
	envOverrideFloat(&cfg.ConfidenceThreshold, "CONFIDENCE_THRESHOLD")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.MailboxDir, "MAILBOX_DIR")
	envOverride(&cfg.WatchSchedule, "WATCH_SCHEDULE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")

	if names := os.Getenv("AXIS_ORDER"); names != "" {
		cfg.AxisOrder = nil
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.AxisOrder = append(cfg.AxisOrder, name)
			}
		}
	}

	// Defaults
	if cfg.ArbiterProvider == "" {
		cfg.ArbiterProvider = "none"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./classifier.db"
	}
	if cfg.MailboxDir == "" {
		cfg.MailboxDir = "./mailbox"
	}

	// Validate
	switch cfg.ArbiterProvider {
	case "none":
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when arbiter_provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when arbiter_provider=openai")
		}
	default:
		log.Fatalf("arbiter_provider must be 'anthropic', 'openai' or 'none', got '%s'", cfg.ArbiterProvider)
	}

	if cfg.ConfidenceThreshold < 0 {
		log.Fatalf("invalid confidence_threshold '%f': must be >= 0", cfg.ConfidenceThreshold)
	}

	return cfg
}

// BuildArbiter constructs the arbitration provider selected in the config.
func (c Config) BuildArbiter() (arbiter.Arbiter, error) {
	apiKey := c.AnthropicAPIKey
	if c.ArbiterProvider == "openai" {
		apiKey = c.OpenAIAPIKey
	}
	return arbiter.New(c.ArbiterProvider, apiKey, c.ArbiterBaseURL, c.ArbiterModel)
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
