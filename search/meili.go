package search

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
)

const idxIssues = "cityfix_issues"

// Meili implements IssueIndex via Meilisearch.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates a Meilisearch client and configures the issue index.
// An unreachable server is not fatal: the index reports unhealthy until it recovers.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("[search] meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxIssues,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("[search] create index %s (may already exist): %v", idxIssues, err)
	}

	index := m.client.Index(idxIssues)
	filterable := []interface{}{"kebele", "category", "status"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("[search] update filterable attrs: %v", err)
	}
	searchable := []string{"description", "category", "kebele", "address"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("[search] update searchable attrs: %v", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("[search] meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Search returns matching issue ids, best match first.
func (m *Meili) Search(query, kebele string, limit int) ([]string, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}
	if limit <= 0 {
		limit = 100
	}

	sr := &meili.SearchRequest{
		IndexUID:             idxIssues,
		Query:                query,
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	}
	if kebele != "" {
		sr.Filter = fmt.Sprintf("kebele = %q", kebele)
	}

	resp, err := m.client.MultiSearch(&meili.MultiSearchRequest{
		Queries: []*meili.SearchRequest{sr},
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, fmt.Errorf("meilisearch search: %w", err)
	}

	var ids []string
	for _, res := range resp.Results {
		for _, hit := range res.Hits {
			if id := decodeString(hit, "id"); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// Index adds or updates an issue.
func (m *Meili) Index(doc IssueDocument) error {
	_, err := m.client.Index(idxIssues).AddDocuments([]IssueDocument{doc}, nil)
	return err
}

func (m *Meili) Delete(id string) error {
	_, err := m.client.Index(idxIssues).DeleteDocument(id, nil)
	return err
}
