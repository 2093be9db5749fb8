package schema

// MediaVideoTable represents the 'media.video' table
type MediaVideoTable struct {
	Table        string
	ID           string
	OwnerID      string
	VideoFileURL string
	ThumbnailURL string
	Title        string
	Description  string
	Duration     string
	Views        string
	IsPublished  string
	CreatedAt    string
	UpdatedAt    string
}

// MediaVideo is the schema definition for media.video
var MediaVideo = MediaVideoTable{
	Table:        "media.video",
	ID:           "id",
	OwnerID:      "ownerid",
	VideoFileURL: "videofileurl",
	ThumbnailURL: "thumbnailurl",
	Title:        "title",
	Description:  "description",
	Duration:     "duration",
	Views:        "views",
	IsPublished:  "ispublished",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t MediaVideoTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.VideoFileURL, t.ThumbnailURL, t.Title, t.Description,
		t.Duration, t.Views, t.IsPublished, t.CreatedAt, t.UpdatedAt,
	}
}
