package domain

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ScentType   string    `json:"scent_type"`
	ImageURL    string    `json:"image_url"`
	ImageAlt    string    `json:"image_alt"`
	Longevity   string    `json:"longevity,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sizes      []ProductSize `json:"sizes"`
	ScentNotes []ScentNote   `json:"scent_notes"`
	Occasions  []string      `json:"occasions"`
}

type ProductSize struct {
	VolumeML int     `json:"volume_ml"`
	Price    float64 `json:"price"`
}

// ScentNote is one entry of a fragrance pyramid. NoteType is one of
// "top", "heart" or "base".
type ScentNote struct {
	NoteType string `json:"note_type"`
	NoteName string `json:"note_name"`
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
