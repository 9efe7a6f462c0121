package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fbar-server/config"
)

func setupMongoDB(cfg config.Config, log zerolog.Logger) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if cfg.MongoDBURL == "" {
		log.Fatal().Msg("MONGODB_URL is not set")
	}
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDBURL))
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to mongodb")
	}
	if err := c.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("could not ping mongodb")
	}
	return c.Database(cfg.MongoDBName)
}

func setupRedis(cfg config.Config, log zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := client.Ping().Result(); err != nil {
		log.Fatal().Err(err).Msg("could not connect to redis")
	}
	return client
}
