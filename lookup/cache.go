package lookup

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"
)

// CacheConfig конфигурация кэша результатов поиска
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	MaxSize         int           `json:"max_size"`
}

// cacheEntry запись в кэше
type cacheEntry struct {
	result      *Result
	expiration  time.Time
	accessCount int64
}

// CacheStats статистика кэша
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Cache кэш результатов поиска с TTL и вытеснением редко используемых записей.
// Возвращаемые результаты общие для всех читателей и не должны изменяться.
type Cache struct {
	config CacheConfig
	data   map[string]*cacheEntry
	mutex  sync.Mutex
	stats  CacheStats
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewCache создает кэш и, если задан интервал, запускает фоновую очистку
func NewCache(config CacheConfig) *Cache {
	cache := &Cache{
		config: config,
		data:   make(map[string]*cacheEntry),
		now:    time.Now,
		stop:   make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go cache.startCleanup()
	}

	return cache
}

// Get возвращает результат из кэша
func (c *Cache) Get(key string) (*Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.config.Enabled {
		c.stats.Misses++
		return nil, false
	}

	entry, exists := c.data[key]
	if !exists || c.now().After(entry.expiration) {
		c.stats.Misses++
		return nil, false
	}

	entry.accessCount++
	c.stats.Hits++
	return entry.result, true
}

// Set сохраняет результат в кэш
func (c *Cache) Set(key string, result *Result) {
	if !c.config.Enabled || result == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && c.config.MaxSize > 0 && len(c.data) >= c.config.MaxSize {
		c.evictLFU()
	}

	c.data[key] = &cacheEntry{
		result:      result,
		expiration:  c.now().Add(c.config.TTL),
		accessCount: 1,
	}
	c.stats.Size = len(c.data)
}

// Clear очищает весь кэш
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
	c.stats = CacheStats{}
}

// GetStats возвращает копию статистики
func (c *Cache) GetStats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stats := c.stats
	stats.Size = len(c.data)
	return stats
}

// Close останавливает фоновую очистку
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// evictLFU удаляет запись с наименьшим числом обращений
func (c *Cache) evictLFU() {
	var victim string
	var victimCount int64 = -1

	for key, entry := range c.data {
		if victimCount == -1 || entry.accessCount < victimCount {
			victim = key
			victimCount = entry.accessCount
		}
	}

	if victim != "" {
		delete(c.data, victim)
	}
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup удаляет устаревшие записи
func (c *Cache) cleanup() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
	c.stats.Size = len(c.data)
}

// cacheKey ключ кэша: запрос без учета регистра и отсортированный список стран
func cacheKey(query string, countries []string) string {
	sorted := append([]string(nil), countries...)
	sort.Strings(sorted)
	raw := strings.ToLower(strings.TrimSpace(query)) + "|" + strings.Join(sorted, ",")
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}
