package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"comanda-be/internal/config"
	"comanda-be/internal/logger"
	"comanda-be/internal/store"
	"comanda-be/internal/table"
)

func main() {
	mode := flag.String("mode", "seed", "seed mode: seed or reset")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	db, _ := strconv.Atoi(cfg.StoreDB)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.StoreAddr,
		Password: cfg.StorePassword,
		DB:       db,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("store unreachable at %s: %v", cfg.StoreAddr, err)
	}

	kv := store.NewRedis(rdb)

	switch *mode {
	case "seed":
		if err := table.NewRegistry(kv).Seed(ctx); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		fmt.Println("table layout seeded")
	case "reset":
		// wipes live orders and history along with the layout rows
		if err := kv.Remove(ctx, "tables"); err != nil {
			log.Fatalf("reset failed: %v", err)
		}
		if err := table.NewRegistry(kv).Seed(ctx); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		fmt.Println("store reset and reseeded")
	default:
		log.Fatalf("unknown mode: %s (use 'seed' or 'reset')", *mode)
	}
}
