// Package search keeps an optional full-text index of issues for the public feed.
package search

import (
	"cityfix-be/models"
)

// IssueDocument is what gets indexed for an issue.
type IssueDocument struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Kebele      string `json:"kebele,omitempty"`
	Address     string `json:"address,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func NewIssueDocument(issue *models.Issue) IssueDocument {
	doc := IssueDocument{
		ID:          issue.ID.Hex(),
		Description: issue.Description,
		Category:    string(issue.Category),
		Status:      string(issue.Status),
		CreatedAt:   issue.CreatedAt.Unix(),
	}
	if issue.Location != nil {
		doc.Kebele = issue.Location.Kebele
		doc.Address = issue.Location.Address
	}
	return doc
}

// IssueIndex finds issue ids by free text. When Healthy is false callers fall back to the store.
type IssueIndex interface {
	Healthy() bool
	Search(query, kebele string, limit int) ([]string, error)
	Index(doc IssueDocument) error
	Delete(id string) error
}

// Noop is the index used when no search engine is configured.
type Noop struct{}

func (Noop) Healthy() bool { return false }
func (Noop) Search(string, string, int) ([]string, error) { return nil, nil }
func (Noop) Index(IssueDocument) error { return nil }
func (Noop) Delete(string) error { return nil }
