package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Credentials holds secrets that only come from the environment
type Credentials struct {
	// APIKey maps to TAVILY_API_KEY and is required.
	APIKey string `envconfig:"TAVILY_API_KEY" required:"true"`
}

// LoadCredentials reads the API key from the environment, loading envFile first when it exists.
// Variables already set in the environment win over the file.
func LoadCredentials(envFile string) (*Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if _, statErr := os.Stat(envFile); statErr == nil {
				logrus.Warnf("%s found but could not be loaded: %v", envFile, err)
			}
		}
	}

	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return &creds, nil
}
