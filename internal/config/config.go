package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Routes maps each category to its notification destination.
type Routes struct {
	Security string `yaml:"security"`
	Cost     string `yaml:"cost"`
	Infra    string `yaml:"infra"`
}

// Config is the full runtime configuration of the notifier.
type Config struct {
	Provider         string
	Model            string
	BedrockRegion    string
	GeminiAPIKey     string
	LLMAPIURL        string
	LLMAPIKey        string
	StrictCategories bool

	Transport       string
	AWSRegion       string
	PubSubProjectID string
	KafkaBrokers    []string
	Routes          Routes

	Port string
}

type fileConfig struct {
	Routes Routes `yaml:"routes"`
}

// Load builds the configuration from NOTIFIER_ROUTES_FILE (if set) and the
// process environment. Environment values win over the file.
func Load() (Config, error) {
	cfg := Config{
		Provider:         strings.ToLower(GetEnv("CLASSIFIER_PROVIDER", "bedrock")),
		Model:            GetEnv("CLASSIFIER_MODEL", ""),
		BedrockRegion:    GetEnv("BEDROCK_REGION", GetEnv("AWS_REGION", "")),
		GeminiAPIKey:     GetEnv("GEMINI_API_KEY", ""),
		LLMAPIURL:        GetEnv("LLM_API_URL", ""),
		LLMAPIKey:        GetEnv("LLM_API_KEY", ""),
		StrictCategories: GetEnvBool("CLASSIFIER_STRICT_CATEGORIES", true),
		Transport:        strings.ToLower(GetEnv("NOTIFIER_TRANSPORT", "sns")),
		AWSRegion:        GetEnv("AWS_REGION", ""),
		PubSubProjectID:  GetEnv("PUBSUB_PROJECT_ID", GetEnv("GOOGLE_CLOUD_PROJECT", "")),
		KafkaBrokers:     GetEnvList("KAFKA_BROKERS"),
		Port:             GetEnv("PORT", "8080"),
	}

	if path := GetEnv("NOTIFIER_ROUTES_FILE", ""); path != "" {
		routes, err := LoadRoutesFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Routes = routes
	}

	cfg.Routes.Security = GetEnv("SECURITY_DESTINATION", GetEnv("SNS_SECURITY_TOPIC_ARN", cfg.Routes.Security))
	cfg.Routes.Cost = GetEnv("COST_DESTINATION", GetEnv("SNS_COST_TOPIC_ARN", cfg.Routes.Cost))
	cfg.Routes.Infra = GetEnv("INFRA_DESTINATION", GetEnv("SNS_INFRA_TOPIC_ARN", cfg.Routes.Infra))

	return cfg, nil
}

// LoadRoutesFile reads the `routes:` section of a YAML file.
func LoadRoutesFile(path string) (Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Routes{}, fmt.Errorf("read routes file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Routes{}, fmt.Errorf("parse routes file %s: %w", path, err)
	}
	return fc.Routes, nil
}

// Validate reports the first missing setting required by the chosen provider and transport.
func (c Config) Validate() error {
	switch c.Provider {
	case "bedrock":
		if c.BedrockRegion == "" {
			return fmt.Errorf("BEDROCK_REGION is required for the bedrock provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.Model == "" {
			return fmt.Errorf("CLASSIFIER_MODEL is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown classifier provider %q", c.Provider)
	}

	switch c.Transport {
	case "sns", "log":
	case "pubsub":
		if c.PubSubProjectID == "" {
			return fmt.Errorf("PUBSUB_PROJECT_ID is required for the pubsub transport")
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for the kafka transport")
		}
	default:
		return fmt.Errorf("unknown notifier transport %q", c.Transport)
	}

	if c.Transport != "log" {
		for _, route := range []struct{ name, dest string }{
			{"security", c.Routes.Security},
			{"cost", c.Routes.Cost},
			{"infra", c.Routes.Infra},
		} {
			if route.dest == "" {
				return fmt.Errorf("no destination configured for category %q", route.name)
			}
		}
	}
	return nil
}
