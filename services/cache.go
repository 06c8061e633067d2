package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"l1board/config"
)

// CacheMode indicates which cache backend is active
type CacheMode string

const (
	CacheModeRedis    CacheMode = "redis"
	CacheModeInMemory CacheMode = "in-memory"
)

// cacheItem for the in-memory fallback
type cacheItem struct {
	Data      []byte
	ExpiresAt time.Time
}

// CacheService is a short-TTL response cache: Redis when reachable, an
// in-memory map otherwise, with a background loop that flips modes as Redis
// health changes.
type CacheService struct {
	cfg *config.Config

	redis     *redis.Client
	mode      CacheMode
	modeMutex sync.RWMutex

	inMemoryStore sync.Map

	stopChan chan struct{}
}

func NewCacheService(cfg *config.Config) *CacheService {
	cs := &CacheService{
		cfg:      cfg,
		mode:     CacheModeInMemory,
		stopChan: make(chan struct{}),
	}

	if cfg.Redis.Enabled {
		cs.connectRedis()
	} else {
		log.Println("Redis disabled in config, using in-memory cache only")
	}

	return cs
}

// connectRedis attempts the initial Redis connection
func (cs *CacheService) connectRedis() {
	if cs.cfg.Redis.Address == "" {
		log.Println("Redis address not configured, using in-memory cache")
		return
	}

	options := &redis.Options{
		Addr:         cs.cfg.Redis.Address,
		Password:     cs.cfg.Redis.Password,
		DB:           cs.cfg.Redis.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		PoolTimeout:  10 * time.Second,
	}

	if cs.cfg.Redis.UseTLS {
		options.TLSConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // For cloud providers with shared certs
		}
		log.Printf("TLS enabled for Redis connection")
	}

	cs.redis = redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pong, err := cs.redis.Ping(ctx).Result()
	if err != nil {
		log.Printf("⚠️  Redis connection failed: %v", err)
		log.Printf("⚠️  Running in IN-MEMORY mode")
		cs.setMode(CacheModeInMemory)
		return
	}

	log.Printf("✓ Redis connected successfully (response: %s)", pong)
	cs.setMode(CacheModeRedis)
}

func (cs *CacheService) setMode(mode CacheMode) {
	cs.modeMutex.Lock()
	defer cs.modeMutex.Unlock()
	cs.mode = mode
}

// Mode reports which backend is currently serving.
func (cs *CacheService) Mode() CacheMode {
	cs.modeMutex.RLock()
	defer cs.modeMutex.RUnlock()
	return cs.mode
}

// Start launches the Redis health-check loop.
func (cs *CacheService) Start() {
	if cs.redis == nil {
		return
	}
	go cs.runHealthCheckLoop()
}

func (cs *CacheService) Stop() {
	close(cs.stopChan)
	if cs.redis != nil {
		cs.redis.Close()
	}
}

// runHealthCheckLoop monitors Redis health and flips modes
func (cs *CacheService) runHealthCheckLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cs.checkRedisHealth()
		case <-cs.stopChan:
			return
		}
	}
}

func (cs *CacheService) checkRedisHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cs.redis.Ping(ctx).Result()

	switch cs.Mode() {
	case CacheModeRedis:
		if err != nil {
			log.Printf("⚠️  Redis health check failed: %v", err)
			log.Printf("⚠️  Switching to IN-MEMORY mode")
			cs.setMode(CacheModeInMemory)
		}
	case CacheModeInMemory:
		if cs.redis != nil && err == nil {
			log.Printf("✓ Redis reconnected, switching back to Redis mode")
			cs.setMode(CacheModeRedis)
		}
	}
}

// Set stores val under key for ttl. Values are JSON-encoded so both backends
// hold the same representation.
func (cs *CacheService) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) {
	data, err := json.Marshal(val)
	if err != nil {
		log.Printf("cache: failed to marshal %s: %v", key, err)
		return
	}

	if cs.Mode() == CacheModeRedis {
		if err := cs.redis.Set(ctx, key, data, ttl).Err(); err == nil {
			return
		} else {
			log.Printf("cache: redis set failed for %s: %v", key, err)
		}
	}

	cs.inMemoryStore.Store(key, &cacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get loads key into dest. Returns false on miss or decode failure.
func (cs *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if cs.Mode() == CacheModeRedis {
		data, err := cs.redis.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(data, dest); err == nil {
				return true
			}
		}
		return false
	}

	val, ok := cs.inMemoryStore.Load(key)
	if !ok {
		return false
	}
	item := val.(*cacheItem)
	if time.Now().After(item.ExpiresAt) {
		cs.inMemoryStore.Delete(key)
		return false
	}
	return json.Unmarshal(item.Data, dest) == nil
}

// Clear drops everything from the active backend.
func (cs *CacheService) Clear(ctx context.Context) {
	if cs.Mode() == CacheModeRedis {
		if err := cs.redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("cache: flush failed: %v", err)
		}
	}
	cs.inMemoryStore.Range(func(key, _ interface{}) bool {
		cs.inMemoryStore.Delete(key)
		return true
	})
}

// Status summarizes the cache for the admin endpoint.
func (cs *CacheService) Status() map[string]interface{} {
	entries := 0
	cs.inMemoryStore.Range(func(_, _ interface{}) bool {
		entries++
		return true
	})

	return map[string]interface{}{
		"mode":              string(cs.Mode()),
		"in_memory_entries": entries,
		"redis_configured":  cs.redis != nil,
	}
}
