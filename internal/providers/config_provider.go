package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"treport/internal/models"
	"treport/internal/structures"
)

const secretsFileName = ".env"

var credentialKeys = map[string]string{
	"trello.credentials.apiKey":      "TRELLO_API_KEY",
	"trello.credentials.apiSecret":   "TRELLO_API_SECRET",
	"trello.credentials.token":       "TRELLO_TOKEN",
	"trello.credentials.tokenSecret": "TRELLO_TOKEN_SECRET",
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	for key, env := range credentialKeys {
		_ = v.BindEnv(key, env)
	}

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	mergeSecretsFile(v)

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.AppName = "TrelloActivityReporter"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.CacheDir = flags.CacheDir
	conf.ReportsDir = flags.ReportsDir

	conf.TimeRange, err = parseTimeRange(flags.StartDate, flags.EndDate)
	if err != nil {
		return nil, err
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	return &conf, nil
}

// mergeSecretsFile fills credential keys from a local dotenv file for
// values that neither the environment nor the config file provided.
func mergeSecretsFile(v *viper.Viper) {
	sv := viper.New()
	sv.SetConfigFile(secretsFileName)
	sv.SetConfigType("env")
	if err := sv.ReadInConfig(); err != nil {
		return
	}
	for key, env := range credentialKeys {
		if v.GetString(key) == "" && sv.GetString(env) != "" {
			v.Set(key, sv.GetString(env))
		}
	}
}

// parseTimeRange validates the start/end date flags: either both are set
// (custom-range mode) or neither (calendar-month mode).
func parseTimeRange(startStr, endStr string) (*models.TimeRange, error) {
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf(
			"expected values for both start-date and end-date, got start_date: %q, end_date: %q",
			startStr, endStr,
		)
	}
	start, err := time.ParseInLocation(time.DateOnly, startStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	end, err := time.ParseInLocation(time.DateOnly, endStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endStr, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf(
			"end date cannot come before start date, start_date: %s, end_date: %s",
			startStr, endStr,
		)
	}
	return &models.TimeRange{Start: start, End: end}, nil
}
