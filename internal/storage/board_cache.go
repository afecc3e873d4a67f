package storage

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/storage/interfaces"
	"treport/internal/structures"
)

const boardFileSuffix = ".board.zst"

// boardFile is the on-disk format for one board's cache file.
type boardFile struct {
	BoardID   string                        `json:"board_id"`
	FetchedAt time.Time                     `json:"fetched_at"`
	Cards     map[string]*models.CachedCard `json:"cards"`
}

type BoardCacheInterface interface {
	Get(boardID string) (map[string]*models.CachedCard, bool)
	Put(boardID string, cards map[string]*models.CachedCard) error
}

// BoardCache persists fetched card movements to disk, one compressed
// JSON file per board under the cache directory. Entries live until the
// file is deleted by hand; staleness is decided per card by the caller.
type BoardCache struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewBoardCache(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) BoardCacheInterface {
	return &BoardCache{
		dir:        conf.CacheDir,
		compressor: compressor,
		logger:     logger,
	}
}

// Get loads the cached card map for a board. A missing, unreadable or
// corrupt cache file is a miss, never an error: the caller falls back to
// a live fetch.
func (bc *BoardCache) Get(boardID string) (map[string]*models.CachedCard, bool) {
	path := bc.filePath(boardID)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			bc.logger.Warnf(providers.TypeCache, "Failed to read cache file %s: %s", path, err)
		}
		return nil, false
	}

	decompressed, err := bc.compressor.Decompress(data)
	if err != nil {
		bc.logger.Warnf(providers.TypeCache, "Failed to decompress cache file %s: %s", path, err)
		return nil, false
	}

	var bf boardFile
	if err := json.Unmarshal(decompressed, &bf); err != nil {
		bc.logger.Warnf(providers.TypeCache, "Failed to parse cache file %s: %s", path, err)
		return nil, false
	}
	if bf.Cards == nil {
		return nil, false
	}

	bc.logger.Debugf(providers.TypeCache, "Loaded cache for board %s: %d cards", boardID, len(bf.Cards))
	return bf.Cards, true
}

// Put overwrites the board's cache file atomically (tmp write + rename).
func (bc *BoardCache) Put(boardID string, cards map[string]*models.CachedCard) error {
	jsonData, err := json.Marshal(&boardFile{
		BoardID:   boardID,
		FetchedAt: time.Now().UTC(),
		Cards:     cards,
	})
	if err != nil {
		return err
	}

	compressed, err := bc.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(bc.dir, 0755); err != nil {
		return err
	}

	path := bc.filePath(boardID)
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(compressed); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func (bc *BoardCache) filePath(boardID string) string {
	return filepath.Join(bc.dir, boardID+boardFileSuffix)
}
