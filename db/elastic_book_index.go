package db

import (
	"context"
	"errors"
	"strconv"

	"github.com/olivere/elastic/v7"
	"library/models"
)

const INDEX_NAME = "books"

// ElasticBookIndex copies books into an Elasticsearch index keyed by book id.
// The memory library stays the source of truth; the index is only a mirror.
type ElasticBookIndex struct {
	IndexName     string
	ElasticClient *elastic.Client
}

func NewElasticBookIndex(indexName string, client *elastic.Client) (*ElasticBookIndex, error) {
	if client == nil {
		return nil, errors.New("elastic client is required")
	}
	if indexName == "" {
		indexName = INDEX_NAME
	}
	return &ElasticBookIndex{indexName, client}, nil
}

func (index *ElasticBookIndex) Put(ctx context.Context, book models.Book) error {
	_, err := index.ElasticClient.
		Index().
		Index(index.IndexName).
		Id(strconv.Itoa(book.Id)).
		BodyJson(book).
		Do(ctx)

	return err
}

// Mirror puts every book, stopping at the first failure.
func (index *ElasticBookIndex) Mirror(ctx context.Context, books []models.Book) error {
	for _, book := range books {
		if err := index.Put(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
