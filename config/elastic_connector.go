package config

import (
	"github.com/olivere/elastic/v7"
)

func NewElasticClient(cfg *Config) (*elastic.Client, error) {
	return elastic.NewClient(
		elastic.SetURL(cfg.ElasticURL),
		elastic.SetSniff(false),
	)
}
