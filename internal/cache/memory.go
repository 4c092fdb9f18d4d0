package cache

import (
	"container/list"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/factly/internal/model"
)

// categoryCache is one TTL-scoped, capacity-bounded partition. go-cache
// handles lazy TTL expiry; the list tracks recency for LRU eviction.
type categoryCache struct {
	mu       sync.Mutex
	cache    *gocache.Cache
	order    *list.List               // Front = most recently used
	index    map[string]*list.Element // key -> order element
	maxItems int
}

// MemoryStore implements Store with independent per-category TTLs and
// least-recently-used eviction once a category exceeds its item cap.
// It does not persist across process restarts.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]*categoryCache
	defaults   model.CacheCategoryConfig
	config     map[string]model.CacheCategoryConfig
}

// NewMemoryStore creates a store from per-category configuration. Categories
// not present in the configuration fall back to a one-hour/1000-item default.
func NewMemoryStore(categories map[string]model.CacheCategoryConfig) *MemoryStore {
	return &MemoryStore{
		categories: make(map[string]*categoryCache),
		defaults:   model.CacheCategoryConfig{TTL: time.Hour, MaxItems: 1000},
		config:     categories,
	}
}

func (s *MemoryStore) category(name string) *categoryCache {
	s.mu.RLock()
	c, ok := s.categories[name]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[name]; ok {
		return c
	}

	cfg, ok := s.config[name]
	if !ok || cfg.TTL <= 0 {
		cfg = s.defaults
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = s.defaults.MaxItems
	}

	c = &categoryCache{
		cache:    gocache.New(cfg.TTL, 2*cfg.TTL),
		order:    list.New(),
		index:    make(map[string]*list.Element),
		maxItems: cfg.MaxItems,
	}
	s.categories[name] = c
	return c
}

// Get retrieves a value; expired entries read as absent
func (s *MemoryStore) Get(category, key string) ([]byte, bool) {
	c := s.category(category)
	c.mu.Lock()
	defer c.mu.Unlock()

	val, found := c.cache.Get(key)
	if !found {
		c.forget(key)
		return nil, false
	}
	c.touch(key)
	return val.([]byte), true
}

// Set stores a value under the category's TTL, evicting the least recently
// used entry if the category is at capacity
func (s *MemoryStore) Set(category, key string, value []byte) {
	c := s.category(category)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[key]; !exists && c.order.Len() >= c.maxItems {
		if oldest := c.order.Back(); oldest != nil {
			victim := oldest.Value.(string)
			c.cache.Delete(victim)
			c.forget(victim)
		}
	}

	c.cache.SetDefault(key, value)
	c.touch(key)
}

// Invalidate removes a single entry
func (s *MemoryStore) Invalidate(category, key string) {
	c := s.category(category)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Delete(key)
	c.forget(key)
}

// Clear empties one category, or every category when name is empty
func (s *MemoryStore) Clear(category string) {
	if category != "" {
		c := s.category(category)
		c.mu.Lock()
		c.cache.Flush()
		c.order.Init()
		c.index = make(map[string]*list.Element)
		c.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		c.mu.Lock()
		c.cache.Flush()
		c.order.Init()
		c.index = make(map[string]*list.Element)
		c.mu.Unlock()
	}
}

// ItemCount reports the live entry count for a category
func (s *MemoryStore) ItemCount(category string) int {
	c := s.category(category)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.ItemCount()
}

// touch marks a key as most recently used. Caller holds c.mu.
func (c *categoryCache) touch(key string) {
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(key)
}

// forget drops a key from the recency index. Caller holds c.mu.
func (c *categoryCache) forget(key string) {
	if el, ok := c.index[key]; ok {
		c.order.Remove(el)
		delete(c.index, key)
	}
}
