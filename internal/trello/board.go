package trello

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/storage"
)

const hotCacheKeyPrefix = "board:"

type BoardFactoryInterface interface {
	Sync(ctx context.Context, boardID string) (*models.BoardData, error)
}

// BoardFactory syncs boards against two cache layers: the in-process hot
// cache (reused when several report jobs reference one board in a run)
// and the per-board disk cache (reused across runs, invalidated per card
// by last-activity timestamp).
type BoardFactory struct {
	client  ClientInterface
	disk    storage.BoardCacheInterface
	hot     providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewBoardFactory(client ClientInterface, disk storage.BoardCacheInterface, hot providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) BoardFactoryInterface {
	return &BoardFactory{
		client:  client,
		disk:    disk,
		hot:     hot,
		logger:  logger,
		metrics: metrics,
	}
}

func (f *BoardFactory) Sync(ctx context.Context, boardID string) (*models.BoardData, error) {
	if data, ok := f.fromHotCache(boardID); ok {
		f.logger.Debugf(providers.TypeCache, "Board %s served from hot cache", boardID)
		return data, nil
	}

	f.logger.Infof(providers.TypeFetch, "Syncing board data for board: %s", boardID)

	if _, err := f.client.Board(ctx, boardID); err != nil {
		return nil, err
	}

	members, err := f.client.BoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board %s members: %w", boardID, err)
	}
	memberMap := make(map[string]string, len(members))
	for _, m := range members {
		memberMap[m.ID] = m.Username
	}

	cards, err := f.client.BoardCards(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board %s cards: %w", boardID, err)
	}

	cached, ok := f.disk.Get(boardID)
	if !ok {
		f.logger.Infof(providers.TypeCache, "No cache file found for board: %s", boardID)
		cached = make(map[string]*models.CachedCard)
	}

	for _, card := range cards {
		entry, ok := cached[card.ID]
		if ok && !entry.LastActivity.Before(card.DateLastActivity) {
			card.Movements = entry.Movements
			f.metrics.IncCardCacheHits()
			continue
		}
		if ok {
			f.logger.Infof(providers.TypeCache, "Cache entry for card %s is expired", card.ID)
		}

		movements, err := f.client.CardMovements(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("board %s card %s movements: %w", boardID, card.ID, err)
		}
		card.Movements = movements
		cached[card.ID] = &models.CachedCard{
			Movements:    movements,
			LastActivity: card.DateLastActivity,
		}
		f.metrics.IncCardCacheMisses()
	}

	// Cache write failures are recoverable: the data is already in
	// memory, the next run just re-fetches.
	if err := f.disk.Put(boardID, cached); err != nil {
		f.logger.Warnf(providers.TypeCache, "Failed to persist cache for board %s: %s", boardID, err)
	}

	data := &models.BoardData{
		BoardID: boardID,
		Cards:   cards,
		Members: memberMap,
	}
	f.toHotCache(boardID, data)
	f.metrics.SetBoardCards(boardID, len(cards))

	f.logger.Debugf(providers.TypeFetch, "Synced board data for board: %s (%d cards)", boardID, len(cards))
	return data, nil
}

func (f *BoardFactory) fromHotCache(boardID string) (*models.BoardData, bool) {
	raw, ok := f.hot.Get(hotCacheKeyPrefix + boardID)
	if !ok {
		return nil, false
	}
	var data models.BoardData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	return &data, true
}

func (f *BoardFactory) toHotCache(boardID string, data *models.BoardData) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	f.hot.Set(hotCacheKeyPrefix+boardID, raw)
}
