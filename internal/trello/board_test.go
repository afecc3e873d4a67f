package trello

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treport/internal/models"
	"treport/internal/testutil"
)

// mockClient implements ClientInterface with canned data per board.
type mockClient struct {
	boards        map[string]*BoardInfo
	members       map[string][]models.Member
	cards         map[string][]*models.Card
	movements     map[string][]models.CardMovement
	movementCalls map[string]int
}

func newMockClient() *mockClient {
	return &mockClient{
		boards:        make(map[string]*BoardInfo),
		members:       make(map[string][]models.Member),
		cards:         make(map[string][]*models.Card),
		movements:     make(map[string][]models.CardMovement),
		movementCalls: make(map[string]int),
	}
}

func (m *mockClient) Board(_ context.Context, boardID string) (*BoardInfo, error) {
	info, ok := m.boards[boardID]
	if !ok {
		return nil, errors.New("no board found with id " + boardID)
	}
	return info, nil
}

func (m *mockClient) BoardMembers(_ context.Context, boardID string) ([]models.Member, error) {
	return m.members[boardID], nil
}

func (m *mockClient) BoardCards(_ context.Context, boardID string) ([]*models.Card, error) {
	return m.cards[boardID], nil
}

func (m *mockClient) CardMovements(_ context.Context, cardID string) ([]models.CardMovement, error) {
	m.movementCalls[cardID]++
	return m.movements[cardID], nil
}

func newTestFactory(client ClientInterface) (*BoardFactory, *testutil.MockBoardCache, *testutil.MockCache, *testutil.MockMetrics) {
	disk := testutil.NewMockBoardCache()
	hot := testutil.NewMockCache()
	metrics := testutil.NewMockMetrics()
	factory := NewBoardFactory(client, disk, hot, &testutil.MockLogger{}, metrics).(*BoardFactory)
	return factory, disk, hot, metrics
}

func seedBoard(client *mockClient, boardID string) {
	client.boards[boardID] = &BoardInfo{ID: boardID, Name: "Board"}
	client.members[boardID] = []models.Member{
		{ID: "m1", Username: "alice"},
		{ID: "m2", Username: "bob"},
	}
	client.cards[boardID] = []*models.Card{
		{
			ID:               "c1",
			Name:             "Card one",
			IDMembers:        []string{"m1"},
			DateLastActivity: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}
	client.movements["c1"] = []models.CardMovement{
		{Source: "Doing", Destination: "Done", Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
}

func TestBoardFactory_SyncFetchesEverything(t *testing.T) {
	client := newMockClient()
	seedBoard(client, "b1")
	factory, disk, _, metrics := newTestFactory(client)

	data, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "b1", data.BoardID)
	assert.Equal(t, "alice", data.Members["m1"])
	require.Len(t, data.Cards, 1)
	assert.Equal(t, "Done", data.Cards[0].Movements[0].Destination)

	assert.Equal(t, 1, disk.Puts)
	assert.Equal(t, 1, metrics.CardCacheMisses)
	assert.Equal(t, 1, metrics.BoardCards["b1"])
}

func TestBoardFactory_UnknownBoardFails(t *testing.T) {
	client := newMockClient()
	factory, _, _, _ := newTestFactory(client)

	_, err := factory.Sync(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestBoardFactory_FreshDiskEntrySkipsMovementFetch(t *testing.T) {
	client := newMockClient()
	seedBoard(client, "b1")
	factory, disk, _, metrics := newTestFactory(client)

	cachedMovements := []models.CardMovement{
		{Source: "To Do", Destination: "Done", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	disk.Data["b1"] = map[string]*models.CachedCard{
		"c1": {
			Movements:    cachedMovements,
			LastActivity: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, 0, client.movementCalls["c1"])
	assert.Equal(t, cachedMovements, data.Cards[0].Movements)
	assert.Equal(t, 1, metrics.CardCacheHits)
}

func TestBoardFactory_StaleDiskEntryRefetches(t *testing.T) {
	client := newMockClient()
	seedBoard(client, "b1")
	factory, disk, _, _ := newTestFactory(client)

	disk.Data["b1"] = map[string]*models.CachedCard{
		"c1": {
			Movements:    []models.CardMovement{{Source: "Old", Destination: "Stale"}},
			LastActivity: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, 1, client.movementCalls["c1"])
	assert.Equal(t, "Done", data.Cards[0].Movements[0].Destination)
	assert.Equal(t, data.Cards[0].DateLastActivity, disk.Data["b1"]["c1"].LastActivity)
}

func TestBoardFactory_SecondSyncServedFromHotCache(t *testing.T) {
	client := newMockClient()
	seedBoard(client, "b1")
	factory, _, _, _ := newTestFactory(client)

	_, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, client.movementCalls["c1"])

	data, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, 1, client.movementCalls["c1"])
	assert.Equal(t, "b1", data.BoardID)
	assert.Equal(t, "alice", data.Members["m1"])
}

func TestBoardFactory_DiskWriteFailureIsRecoverable(t *testing.T) {
	client := newMockClient()
	seedBoard(client, "b1")
	factory, disk, _, _ := newTestFactory(client)
	disk.PutErr = errors.New("disk full")

	data, err := factory.Sync(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, data.Cards, 1)
}
