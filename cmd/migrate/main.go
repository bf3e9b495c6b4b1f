package main

import (
	"context"

	"github.com/joho/godotenv"

	mongomigration "bookcal/internal/migrations/mongo"
	"bookcal/pkg/config"
)

const ServiceName = "migrate"

func main() {
	_ = godotenv.Load()
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := mongomigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed", "database", cfg.MongoDatabaseName)
}
