package structures

import (
	"time"

	"treport/internal/models"
)

type Credentials struct {
	APIKey      string `yaml:"apiKey" validate:"required"`
	APISecret   string `yaml:"apiSecret" validate:"required"`
	Token       string `yaml:"token" validate:"required"`
	TokenSecret string `yaml:"tokenSecret" validate:"required"`
}

type TrelloConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Timeout     time.Duration `yaml:"timeout"`
	Credentials Credentials   `yaml:"credentials"`
}

type FilterRules struct {
	NameStartsWith []string `yaml:"nameStartsWith"`
	NameContains   []string `yaml:"nameContains"`
}

type BoardConfig struct {
	ID         string      `yaml:"id" validate:"required"`
	DoneColumn string      `yaml:"doneColumn" validate:"required"`
	CardTag    string      `yaml:"cardTag"`
	Include    FilterRules `yaml:"include"`
	Exclude    FilterRules `yaml:"exclude"`
}

type RecipientsConfig struct {
	File string `yaml:"file" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	CacheDir   string
	ReportsDir string
	TimeRange  *models.TimeRange
	Trello     TrelloConfig     `yaml:"trello"`
	Boards     []BoardConfig    `yaml:"boards" validate:"required"`
	Recipients RecipientsConfig `yaml:"recipients"`
	Logger     LoggerConfig     `yaml:"logger"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	StartDate  string
	EndDate    string
	ReportsDir string
	CacheDir   string
	DebugMode  bool
}
