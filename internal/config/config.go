package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Tavily   TavilyConfig   `yaml:"tavily" mapstructure:"tavily"`
	Groq     GroqConfig     `yaml:"groq" mapstructure:"groq"`
	SerpAPI  SerpAPIConfig  `yaml:"serpapi" mapstructure:"serpapi"`
	JSearch  JSearchConfig  `yaml:"jsearch" mapstructure:"jsearch"`
	Sheets   SheetsConfig   `yaml:"sheets" mapstructure:"sheets"`
	Research ResearchConfig `yaml:"research" mapstructure:"research"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// TavilyConfig holds deep-research search API settings. Keys is a list so
// the client can rotate to the next key when one is exhausted.
type TavilyConfig struct {
	Keys       []string `yaml:"keys" mapstructure:"keys"`
	BaseURL    string   `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int      `yaml:"max_results" mapstructure:"max_results"`
}

// GroqConfig holds the financial-estimate LLM settings.
type GroqConfig struct {
	Keys    []string `yaml:"keys" mapstructure:"keys"`
	BaseURL string   `yaml:"base_url" mapstructure:"base_url"`
	Model   string   `yaml:"model" mapstructure:"model"`
}

// SerpAPIConfig holds Google Jobs search settings.
type SerpAPIConfig struct {
	Keys    []string `yaml:"keys" mapstructure:"keys"`
	BaseURL string   `yaml:"base_url" mapstructure:"base_url"`
}

// JSearchConfig holds RapidAPI JSearch settings.
type JSearchConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Host    string `yaml:"host" mapstructure:"host"`
}

// SheetsConfig holds Google Sheets sync settings.
type SheetsConfig struct {
	SpreadsheetID      string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	SheetName          string `yaml:"sheet_name" mapstructure:"sheet_name"`
	ServiceAccountJSON string `yaml:"service_account_json" mapstructure:"service_account_json"`
}

// ResearchConfig configures the per-company research loop.
type ResearchConfig struct {
	DelaySecs      int     `yaml:"delay_secs" mapstructure:"delay_secs"`
	Retries        int     `yaml:"retries" mapstructure:"retries"`
	MaxConcurrent  int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	NewsMaxResults int     `yaml:"news_max_results" mapstructure:"news_max_results"`
	FinMaxResults  int     `yaml:"fin_max_results" mapstructure:"fin_max_results"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	ScoreThreshold float64 `yaml:"score_threshold" mapstructure:"score_threshold"`
}

// ScoringConfig configures the lead scorer.
type ScoringConfig struct {
	Strategy        string  `yaml:"strategy" mapstructure:"strategy"`
	RevenueRange    string  `yaml:"revenue_range" mapstructure:"revenue_range"`
	EmployeeRange   string  `yaml:"employee_range" mapstructure:"employee_range"`
	PointsPerRole   float64 `yaml:"points_per_role" mapstructure:"points_per_role"`
	RangeTolerance  float64 `yaml:"range_tolerance" mapstructure:"range_tolerance"`
	INRCroreToUSDMM float64 `yaml:"inr_crore_to_usd_mm" mapstructure:"inr_crore_to_usd_mm"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("tavily.max_results", 20)
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("jsearch.base_url", "https://jsearch.p.rapidapi.com")
	v.SetDefault("jsearch.host", "jsearch.p.rapidapi.com")
	v.SetDefault("sheets.sheet_name", "Company_data")
	v.SetDefault("research.delay_secs", 6)
	v.SetDefault("research.retries", 3)
	v.SetDefault("research.max_concurrent", 4)
	v.SetDefault("research.news_max_results", 10)
	v.SetDefault("research.fin_max_results", 20)
	v.SetDefault("research.timeout_secs", 30)
	v.SetDefault("research.score_threshold", 10.0)
	v.SetDefault("scoring.strategy", "per-role")
	v.SetDefault("scoring.revenue_range", "Any")
	v.SetDefault("scoring.employee_range", "Any")
	v.SetDefault("scoring.points_per_role", 5.0)
	v.SetDefault("scoring.range_tolerance", 0.2)
	v.SetDefault("scoring.inr_crore_to_usd_mm", 0.12)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
