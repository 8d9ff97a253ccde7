package services

import "cityfix-be/models"

// Payloads of the realtime events. Issue-carrying events send the populated issue itself.

type VoteUpdated struct {
	IssueID      string `json:"issueId"`
	UrgencyCount int64  `json:"urgencyCount"`
}

type IssueStatusChanged struct {
	IssueID string             `json:"issueId"`
	Status  models.IssueStatus `json:"status"`
}

type CommentCountUpdated struct {
	IssueID      string `json:"issueId"`
	CommentCount int64  `json:"commentCount"`
}
