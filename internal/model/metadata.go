package model

// MovieMetadata is the fixed, versioned schema clients send alongside
// the video in the multipart form. The upload endpoint rejects anything
// that doesn't parse into it instead of passing loose JSON downstream.
type MovieMetadata struct {
	SchemaVersion int `json:"schema_version"`

	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Year        int     `json:"year" validate:"omitempty,min=1888,max=2100"`
	Duration    int     `json:"duration" validate:"omitempty,min=0"` // minutes
	Quality     string  `json:"quality"`
	Rating      float64 `json:"rating" validate:"omitempty,min=0,max=10"`

	Genres   StringSlice `json:"genres"`
	Tags     StringSlice `json:"tags"`
	Director string      `json:"director"`
	Cast     StringSlice `json:"cast"`

	TrailerURL string `json:"trailer_url" validate:"omitempty,url"`
}
