package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the Postgres connection string
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// TraineeSheetID identifies the Google Sheet holding cohort rosters
	TraineeSheetID string `yaml:"traineeSheetID" validate:"required"`

	// RosterTab is the tab within the trainee sheet to read rosters from
	RosterTab string `yaml:"rosterTab" validate:"required"`

	GmailUserID string `yaml:"gmailUserID" validate:"required"`
	GmailSender string `yaml:"gmailSender,omitempty"`

	// DefaultSessionRule is the rrule used for cohort session schedules
	// when defineCohort is not given one explicitly
	DefaultSessionRule string `yaml:"defaultSessionRule,omitempty"`

	// DefaultNumGroups is used by balanceGroups when no group count is given
	DefaultNumGroups int `yaml:"defaultNumGroups,omitempty" validate:"omitempty,min=2"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from cohortly_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "cohortly_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DefaultSessionRule != "" {
		if _, err := rrule.StrToRRule(cfg.DefaultSessionRule); err != nil {
			return fmt.Errorf("invalid rrule in defaultSessionRule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "cohortly_config.yaml"
	if env != "" {
		configFileName = fmt.Sprintf("cohortly_config.%s.yaml", env)
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
