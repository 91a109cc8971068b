package domain

import "time"

// Blog is a bookmarked post owned by the user who created it.
// CreatorID is set once at creation and is the only input to ownership checks.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	CreatorID string    `json:"-"`
	Creator   *UserRef  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields mandatory at creation time.
func (b *Blog) Validate() error {
	if b.Title == "" || b.URL == "" {
		return NewValidationError("title and url are required")
	}
	if b.Likes < 0 {
		return NewValidationError("likes must not be negative")
	}
	return nil
}
