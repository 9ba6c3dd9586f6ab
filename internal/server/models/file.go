package models

import "time"

// FileCategory classifies an uploaded document. Fixed at upload time.
type FileCategory string

const (
	CategoryProfile     FileCategory = "profile"
	CategoryDocument    FileCategory = "document"
	CategorySocialProof FileCategory = "social_proof"
)

// Valid reports whether c is a known category.
func (c FileCategory) Valid() bool {
	switch c {
	case CategoryProfile, CategoryDocument, CategorySocialProof:
		return true
	}
	return false
}

// StoredFile describes an uploaded document. The bytes themselves live in
// the blob store under StorageKey.
type StoredFile struct {
	ID       string       `json:"id"`
	OwnerID  string       `json:"ownerId"`
	Name     string       `json:"name"`
	Size     int64        `json:"size"`
	MimeType string       `json:"type"`
	Category FileCategory `json:"category"`

	// StorageKey is the blob-store key of the content. Internal.
	StorageKey string `json:"-"`

	// URL is a resolvable reference to the content, filled in by the
	// transport layer. Not persisted.
	URL string `json:"url,omitempty"`

	UploadedAt time.Time `json:"uploadedAt"`
}
