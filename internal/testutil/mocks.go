package testutil

import (
	"sync"
	"time"

	"treport/internal/models"
	"treport/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	CacheHits       int
	CacheMisses     int
	CardCacheHits   int
	CardCacheMisses int
	BoardCards      map[string]int
	ReportsWritten  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{BoardCards: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncCardCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CardCacheHits++
}
func (m *MockMetrics) IncCardCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CardCacheMisses++
}
func (m *MockMetrics) SetBoardCards(boardID string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BoardCards[boardID] = count
}
func (m *MockMetrics) IncReportsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsWritten++
}

// MockBoardCache implements storage.BoardCacheInterface.
type MockBoardCache struct {
	mu     sync.Mutex
	Data   map[string]map[string]*models.CachedCard
	PutErr error
	Puts   int
}

func NewMockBoardCache() *MockBoardCache {
	return &MockBoardCache{Data: make(map[string]map[string]*models.CachedCard)}
}

func (m *MockBoardCache) Get(boardID string) (map[string]*models.CachedCard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cards, ok := m.Data[boardID]
	return cards, ok
}

func (m *MockBoardCache) Put(boardID string, cards map[string]*models.CachedCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Puts++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Data[boardID] = cards
	return nil
}

// MockRecipientService implements services.RecipientServiceInterface.
type MockRecipientService struct {
	Entries map[string]*models.RecipientEntry
}

func (m *MockRecipientService) Lookup(username string) (*models.RecipientEntry, bool) {
	entry, ok := m.Entries[username]
	return entry, ok
}

func (m *MockRecipientService) Count() int {
	return len(m.Entries)
}
