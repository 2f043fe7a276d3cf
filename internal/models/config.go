package models

import "time"

// Config represents the application configuration
type Config struct {
	LogLevel  string          `yaml:"logLevel"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Email     EmailConfig     `yaml:"email"`
}

// InputConfig describes the email dump to read
type InputConfig struct {
	Path string `yaml:"path"`
	// MaxFieldSize is the largest accepted CSV field in bytes, 0 for the platform maximum.
	MaxFieldSize int64 `yaml:"maxFieldSize"`
}

// OutputConfig describes where and how a table is written
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// SentimentConfig configures the sentiment annotator
type SentimentConfig struct {
	Enabled       bool   `yaml:"enabled"`
	BodyColumn    string `yaml:"bodyColumn"`
	ReuseAnalyzer bool   `yaml:"reuseAnalyzer"`
	Lexicon       string `yaml:"lexicon"`
}

// EmailConfig represents IMAP email configuration
type EmailConfig struct {
	Imap     string        `yaml:"imap"`
	Login    string        `yaml:"login"`
	Password string        `yaml:"password"`
	MailBox  string        `yaml:"mailbox"`
	Since    time.Duration `yaml:"since"` // 0 fetches every message
}
