package model

import "time"

// Document is an uploaded file tracked in the catalog. FilePath is the
// object-storage location the client uploads to via a presigned URL.
type Document struct {
	ID        string
	Name      string
	Type      string
	FilePath  string
	CreatedAt time.Time
}

// Library links a user to a document they have added to their collection.
type Library struct {
	ID         string
	UserID     string
	DocumentID string
	CreatedAt  time.Time
}
