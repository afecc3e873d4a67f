package services

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/structures"
)

type RecipientServiceInterface interface {
	Lookup(username string) (*models.RecipientEntry, bool)
	Count() int
}

// RecipientService holds the manually maintained recipient registry,
// loaded once per run and read-only afterward.
type RecipientService struct {
	entries map[string]*models.RecipientEntry
}

// NewRecipientService reads the recipient file. The cross-reference has
// no meaningful fallback without it, so any read or parse failure is
// returned as a hard error.
func NewRecipientService(conf *structures.Config, logger providers.Logger) (RecipientServiceInterface, error) {
	logger.Infof(providers.TypeApp, "Reading recipient data from file: %s", conf.Recipients.File)

	data, err := os.ReadFile(conf.Recipients.File)
	if err != nil {
		return nil, fmt.Errorf("recipient file: %w", err)
	}

	var entries map[string]*models.RecipientEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("recipient file %s: %w", conf.Recipients.File, err)
	}

	logger.Debugf(providers.TypeApp, "Loaded %d recipients", len(entries))
	return &RecipientService{entries: entries}, nil
}

func (rs *RecipientService) Lookup(username string) (*models.RecipientEntry, bool) {
	entry, ok := rs.entries[username]
	return entry, ok
}

func (rs *RecipientService) Count() int {
	return len(rs.entries)
}
