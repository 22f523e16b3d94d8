package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/nkraev/pos-backend/internal/models"
)

const Index = "customers"

func Customers(ctx context.Context, es *elasticsearch.Client, query string, size int) ([]models.Customer, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "phone_number", "email"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(Index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Customer `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	customers := make([]models.Customer, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		customers[i] = hit.Source
	}
	return customers, nil
}

func IndexCustomer(ctx context.Context, es *elasticsearch.Client, customer *models.Customer) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("search: encode customer: %w", err)
	}

	res, err := es.Index(
		Index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(customer.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("search: index customer: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search: index customer: %s", res.Status())
	}
	return nil
}

func DeleteCustomer(ctx context.Context, es *elasticsearch.Client, id uint) error {
	res, err := es.Delete(
		Index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete customer: %w", err)
	}
	defer res.Body.Close()

	// 404 from the index is fine, the document may never have been indexed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete customer: %s", res.Status())
	}
	return nil
}
