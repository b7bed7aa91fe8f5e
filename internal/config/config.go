package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/repolens/repolens/internal/util"
)

// Config holds all application configuration
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Reports  ReportsConfig  `yaml:"reports"`
	Email    EmailConfig    `yaml:"email"`
	AI       AIConfig       `yaml:"ai"`
	Verbose  bool           `yaml:"-"` // Set via CLI only
}

// GitHubConfig holds API access settings
type GitHubConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// AnalysisConfig holds code analysis settings
type AnalysisConfig struct {
	MaxFiles       int      `yaml:"max_files"`
	FileTypes      []string `yaml:"file_types"`
	Depth          string   `yaml:"depth"` // Basic, Standard, Deep
	IncludeCommits bool     `yaml:"include_commits"`
	CommitLimit    int      `yaml:"commit_limit"`
}

// ReportsConfig holds report output settings
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir"`
	Charts    bool   `yaml:"charts"`
}

// EmailConfig holds email delivery settings
type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromAddress  string `yaml:"from_address"`
	FromName     string `yaml:"from_name"`
	ToAddress    string `yaml:"to_address"`
}

// AIConfig holds the optional model-backed analysis settings
type AIConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // openai, googleai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom API endpoint
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
		},
		Analysis: AnalysisConfig{
			MaxFiles:       5,
			FileTypes:      []string{"py", "js", "java"},
			Depth:          "Standard",
			IncludeCommits: true,
			CommitLimit:    100,
		},
		Reports: ReportsConfig{
			OutputDir: "reports",
			Charts:    true,
		},
		Email: EmailConfig{
			SMTPPort: 587,
			FromName: "Repolens",
		},
		AI: AIConfig{
			Provider: "openai",
		},
	}
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Use defaults if can't find home
		}
		path = filepath.Join(homeDir, ".config", "repolens", "config.yaml")
	}

	// Expand ~ in path
	path = util.ExpandPath(path)

	// Read config file if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Reports.OutputDir = util.ExpandPath(cfg.Reports.OutputDir)

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Analysis.Depth {
	case "Basic", "Standard", "Deep":
	default:
		return fmt.Errorf("invalid analysis depth %q: must be Basic, Standard or Deep", c.Analysis.Depth)
	}

	if c.Analysis.MaxFiles < 1 {
		return fmt.Errorf("max_files must be at least 1")
	}

	if len(c.Analysis.FileTypes) == 0 {
		return fmt.Errorf("at least one file type is required")
	}

	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required when email is enabled")
		}
		if c.Email.ToAddress == "" {
			return fmt.Errorf("to_address is required when email is enabled")
		}
	}

	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if c.AI.Enabled && c.AI.APIKey == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.AI.APIKey = key
		} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			c.AI.APIKey = key
		}
	}

	return nil
}
