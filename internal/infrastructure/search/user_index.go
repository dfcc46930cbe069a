package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/data-labeling-backend/internal/application"
)

// UserIndex keeps a username index in Elasticsearch.
type UserIndex struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index, Timeout: 3 * time.Second}
}

type userDoc struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	IndexedAt string `json:"indexed_at"`
}

func (x *UserIndex) IndexUser(ctx context.Context, doc application.UserDocument) error {
	b, err := json.Marshal(userDoc{
		ID:        doc.ID,
		Username:  doc.Username,
		Role:      string(doc.Role),
		IsActive:  doc.Active,
		IndexedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	req := esapi.IndexRequest{Index: x.Index, DocumentID: doc.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", doc.ID, res.Status())
	}
	return nil
}

// SearchUsers runs a match query on username restricted to active users.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]string, error) {
	b, err := json.Marshal(buildUserQuery(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func buildUserQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{
						"username": map[string]any{"query": q, "fuzziness": "AUTO"},
					}},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
				},
			},
		},
		"size": size,
	}
}

var _ application.UserIndex = (*UserIndex)(nil)
