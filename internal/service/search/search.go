package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/retrolabs/retrogame-api/internal/models"
)

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Game, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Game `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	games := make([]models.Game, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		games[i] = hit.Source
	}
	return r.Hits.Total.Value, games, nil
}

func IndexGame(ctx context.Context, es *elasticsearch.Client, index string, game *models.Game) error {
	body, err := json.Marshal(game)
	if err != nil {
		return err
	}
	res, err := es.Index(
		index,
		bytes.NewReader(body),
		es.Index.WithDocumentID(fmt.Sprint(game.ID)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.Status())
	}
	return nil
}

func DeleteGame(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(index, fmt.Sprint(id), es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete error: %s", res.Status())
	}
	return nil
}
