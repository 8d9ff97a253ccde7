package search

import (
	"encoding/json"
	"testing"
	"time"

	"cityfix-be/models"

	meili "github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewIssueDocument(t *testing.T) {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	issue := &models.Issue{
		ID:          primitive.NewObjectID(),
		Category:    models.Water,
		Status:      models.InProgress,
		Description: "Burst pipe near the market",
		Location:    &models.Location{Kebele: "03", Address: "Bole Rd"},
		CreatedAt:   created,
	}

	doc := NewIssueDocument(issue)
	assert.Equal(t, issue.ID.Hex(), doc.ID)
	assert.Equal(t, "Water", doc.Category)
	assert.Equal(t, "In Progress", doc.Status)
	assert.Equal(t, "03", doc.Kebele)
	assert.Equal(t, "Bole Rd", doc.Address)
	assert.Equal(t, created.Unix(), doc.CreatedAt)

	issue.Location = nil
	doc = NewIssueDocument(issue)
	assert.Empty(t, doc.Kebele)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "kebele")
}

func TestNoopIsNeverHealthy(t *testing.T) {
	var idx IssueIndex = Noop{}
	assert.False(t, idx.Healthy())
	ids, err := idx.Search("pipe", "", 10)
	assert.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, idx.Index(IssueDocument{ID: "x"}))
	assert.NoError(t, idx.Delete("x"))
}

func TestMeiliUnreachableReportsUnhealthy(t *testing.T) {
	m := NewMeili("http://127.0.0.1:1", "")
	defer m.Close()

	assert.False(t, m.Healthy())
	_, err := m.Search("pipe", "03", 10)
	assert.Error(t, err)
}

func TestDecodeString(t *testing.T) {
	hit := meili.Hit{
		"id":    json.RawMessage(`"65f0c0ffee"`),
		"count": json.RawMessage(`3`),
	}
	assert.Equal(t, "65f0c0ffee", decodeString(hit, "id"))
	assert.Empty(t, decodeString(hit, "count"))
	assert.Empty(t, decodeString(hit, "missing"))
}
