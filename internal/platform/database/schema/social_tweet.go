package schema

// SocialTweetTable represents the 'social.tweet' table
type SocialTweetTable struct {
	Table     string
	ID        string
	OwnerID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialTweet is the schema definition for social.tweet
var SocialTweet = SocialTweetTable{
	Table:     "social.tweet",
	ID:        "id",
	OwnerID:   "ownerid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
