package config

import (
	"os"

	"maildump-sentiment/internal/models"

	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when no file is given
func Default() *models.Config {
	return &models.Config{
		LogLevel: "info",
		Output: models.OutputConfig{
			Format: "csv",
		},
		Sentiment: models.SentimentConfig{
			Enabled:       true,
			BodyColumn:    models.ColMessageBody,
			ReuseAnalyzer: true,
		},
		Email: models.EmailConfig{
			MailBox: "INBOX",
		},
	}
}

// Load reads the configuration from the specified YAML file on top of Default
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
