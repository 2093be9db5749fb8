package schema

// SocialLikeTable represents the 'social.like' table.
// Exactly one of VideoID, CommentID and TweetID is set per row.
type SocialLikeTable struct {
	Table     string
	ID        string
	LikedBy   string
	VideoID   string
	CommentID string
	TweetID   string
	CreatedAt string
}

// SocialLike is the schema definition for social.like
var SocialLike = SocialLikeTable{
	Table:     "social.like",
	ID:        "id",
	LikedBy:   "likedby",
	VideoID:   "videoid",
	CommentID: "commentid",
	TweetID:   "tweetid",
	CreatedAt: "createdat",
}
