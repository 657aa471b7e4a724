package config

import (
	"log"

	"phuler.GO/core/kv"
)

// NewSessionStore picks the durable backend for cart/wishlist persistence:
// Redis when configured and reachable, otherwise one JSON file per key under
// DataDir. Falls back to memory only if the data dir cannot be created.
func NewSessionStore() kv.Store {
	if RedisClient != nil {
		if err := RedisClient.Ping(RedisCtx()).Err(); err == nil {
			log.Println("session store: redis")
			return kv.NewRedisStore(RedisClient)
		}
		log.Println("session store: redis configured but not reachable, using files")
	}
	dir := "data/sessions"
	if AppConfig != nil && AppConfig.DataDir != "" {
		dir = AppConfig.DataDir
	}
	fs, err := kv.NewFileStore(dir)
	if err != nil {
		log.Printf("session store: %v, falling back to memory", err)
		return kv.NewMemoryStore()
	}
	log.Printf("session store: files under %s", dir)
	return fs
}
