package models

import "time"

// Anamnesis is the health questionnaire filled in once per user. Answers is
// a free-form map keyed by question id; the external store keeps it as a
// JSON column upserted by user id.
type Anamnesis struct {
	UserID    string         `json:"userId"`
	Answers   map[string]any `json:"answers"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
