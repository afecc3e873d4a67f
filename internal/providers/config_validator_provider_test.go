package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treport/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Trello: structures.TrelloConfig{
			Credentials: structures.Credentials{
				APIKey:      "key",
				APISecret:   "secret",
				Token:       "token",
				TokenSecret: "token-secret",
			},
		},
		Boards: []structures.BoardConfig{
			{ID: "61d77b3c650da472e3516146", DoneColumn: "Done"},
		},
		Recipients: structures.RecipientsConfig{
			File: "patreon_recipients.json",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_MissingAPIKey(t *testing.T) {
	c := validConfig()
	c.Trello.Credentials.APIKey = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingToken(t *testing.T) {
	c := validConfig()
	c.Trello.Credentials.Token = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NoBoards(t *testing.T) {
	c := validConfig()
	c.Boards = nil
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyRecipientFile(t *testing.T) {
	c := validConfig()
	c.Recipients.File = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
