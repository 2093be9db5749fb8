package schema

// MediaPlaylistTable represents the 'media.playlist' table
type MediaPlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// MediaPlaylist is the schema definition for media.playlist
var MediaPlaylist = MediaPlaylistTable{
	Table:       "media.playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// MediaPlaylistVideoTable represents the 'media.playlistvideo' table
type MediaPlaylistVideoTable struct {
	Table      string
	PlaylistID string
	VideoID    string
	Position   string
	AddedAt    string
}

// MediaPlaylistVideo is the schema definition for media.playlistvideo
var MediaPlaylistVideo = MediaPlaylistVideoTable{
	Table:      "media.playlistvideo",
	PlaylistID: "playlistid",
	VideoID:    "videoid",
	Position:   "position",
	AddedAt:    "addedat",
}
