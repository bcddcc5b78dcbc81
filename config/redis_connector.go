package config

import (
	"gopkg.in/redis.v5"
)

func NewRedisClient(cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
