// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package like toggles likes on videos, comments and tweets.
package like

import (
	"time"

	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/internal/user"
	"github.com/taibuivan/vidtube/internal/video"
)

// Like is one user's like on exactly one target.
type Like struct {
	ID        string    `json:"id"`
	LikedBy   string    `json:"likedBy"`
	VideoID   *string   `json:"video,omitempty"`
	CommentID *string   `json:"comment,omitempty"`
	TweetID   *string   `json:"tweet,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Target is the kind of entity a like points at.
type Target string

const (
	TargetVideo   Target = "video"
	TargetComment Target = "comment"
	TargetTweet   Target = "tweet"
)

// column returns the social.like column that references the target.
func (target Target) column() string {
	switch target {
	case TargetComment:
		return schema.SocialLike.CommentID
	case TargetTweet:
		return schema.SocialLike.TweetID
	default:
		return schema.SocialLike.VideoID
	}
}

// resource names the target in error and response messages.
func (target Target) resource() string {
	switch target {
	case TargetComment:
		return "Comment"
	case TargetTweet:
		return "Tweet"
	default:
		return "Video"
	}
}

// Toggled is the outcome of a like toggle.
type Toggled struct {
	State toggle.State `json:"state"`
	Liked bool         `json:"liked"`
	Like  *Like        `json:"like"`
}

// LikedVideo is a video the actor liked, with its owner flattened.
type LikedVideo struct {
	ID      string    `json:"id"`
	LikedAt time.Time `json:"likedAt"`
	Video   struct {
		video.Video
		Owner user.Summary `json:"owner"`
	} `json:"video"`
}
