// Package search provides product full-text search: Elasticsearch when
// configured, falling back to the engine's substring matcher otherwise.
// A down or unconfigured cluster never fails a request.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"

	"phuler.GO/catalog"
	"phuler.GO/filter"
)

type Service struct {
	client  *elasticsearch.Client
	index   string
	catalog *catalog.Catalog
}

// NewService builds a search service over the catalog. The ES client is nil
// unless ELASTICSEARCH_HOST is set.
func NewService(c *catalog.Catalog) *Service {
	s := &Service{catalog: c, index: "phuler_catalog_product"}
	if prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX"); prefix != "" {
		s.index = prefix + "_catalog_product"
	}
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		log.Printf("search: elasticsearch client: %v (falling back to local matching)", err)
		return s
	}
	s.client = client
	return s
}

// Search returns up to limit products matching query, best match first when
// Elasticsearch serves the request, catalog order when matched locally.
func (s *Service) Search(ctx context.Context, query string, limit int) []catalog.Product {
	if limit <= 0 {
		limit = 20
	}
	if s.client != nil {
		if hits, err := s.searchES(ctx, query, limit); err == nil {
			return hits
		} else {
			log.Printf("search: elasticsearch query failed: %v (falling back to local matching)", err)
		}
	}
	st := filter.Default()
	st.SearchQuery = query
	matched := filter.Derive(s.catalog.Products(), st)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func (s *Service) searchES(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "category", "collection", "short_description"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					EntityID uint `json:"entity_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if p := s.catalog.ByID(hit.Source.EntityID); p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}
