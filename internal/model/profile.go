package model

import "time"

// SourceType records where an author profile came from
type SourceType string

const (
	SourceHistorical SourceType = "historical_figure"
	SourceManual     SourceType = "manual"
)

// AuthorProfile is the persisted identity and style guide of an author
type AuthorProfile struct {
	AuthorID    string     `json:"author_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SourceType  SourceType `json:"source_type,omitempty"`
	StyleGuide  StyleGuide `json:"style_guide"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAuthorProfile creates a profile stamped with the current time
func NewAuthorProfile(authorID, name, description string, guide StyleGuide) AuthorProfile {
	now := time.Now()
	return AuthorProfile{
		AuthorID:    authorID,
		Name:        name,
		Description: description,
		StyleGuide:  guide,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Dataset is the ordered set of training examples for one author
type Dataset struct {
	AuthorID  string            `json:"author_id"`
	Examples  []TrainingExample `json:"examples"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewDataset creates an empty dataset for authorID
func NewDataset(authorID string) *Dataset {
	now := time.Now()
	return &Dataset{AuthorID: authorID, Examples: []TrainingExample{}, CreatedAt: now, UpdatedAt: now}
}

// Add appends examples and bumps UpdatedAt
func (d *Dataset) Add(examples ...TrainingExample) {
	d.Examples = append(d.Examples, examples...)
	d.UpdatedAt = time.Now()
}

// Size returns the number of examples
func (d *Dataset) Size() int {
	return len(d.Examples)
}
