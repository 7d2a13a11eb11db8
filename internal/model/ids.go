package model

// Each id kind is its own type: an ItemID is never accepted where a
// FolderID is expected without an explicit conversion.
type (
	ItemID         string
	CollectionID   string
	OrganizationID string
	FolderID       string
	GroupID        string
	UserID         string
)

// DirID is the daemon's older name for a folder id.
type DirID = FolderID
