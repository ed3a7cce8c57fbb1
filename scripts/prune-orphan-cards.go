package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/entities"
)

// Removes collection entries that reference card IDs no longer present in
// the embedded catalog. Run after retiring cards from cards.json.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	cat, err := catalog.New()
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	keys, err := client.Keys(ctx, "collection:*").Result()
	if err != nil {
		log.Fatal("Failed to list collection keys:", err)
	}

	fmt.Printf("Found %d collections to check\n", len(keys))

	var touched, pruned int
	for _, key := range keys {
		data, err := client.Get(ctx, key).Result()
		if err != nil {
			log.Printf("Failed to read %s: %v", key, err)
			continue
		}

		var col entities.Collection
		if err := json.Unmarshal([]byte(data), &col); err != nil {
			log.Printf("Failed to parse %s: %v", key, err)
			continue
		}

		var removed int
		for entryKey, owned := range col.Cards {
			if !cat.Has(owned.CardID) {
				delete(col.Cards, entryKey)
				removed++
			}
		}
		if removed == 0 {
			continue
		}

		fixed, err := json.Marshal(&col)
		if err != nil {
			log.Printf("Failed to marshal %s: %v", key, err)
			continue
		}
		if err := client.Set(ctx, key, fixed, 0).Err(); err != nil {
			log.Printf("Failed to write %s: %v", key, err)
			continue
		}

		touched++
		pruned += removed
		fmt.Printf("  %s: removed %d orphan entries\n", key, removed)
	}

	fmt.Printf("Done: %d collections updated, %d entries pruned\n", touched, pruned)
}
