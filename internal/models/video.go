package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default output dimensions requested from the CDN player transform.
const (
	DefaultHeight = 1080
	DefaultWidth  = 1920
)

type Transformation struct {
	Height  int `bson:"height" json:"height"`
	Width   int `bson:"width" json:"width"`
	Quality int `bson:"quality,omitempty" json:"quality,omitempty"` // 1..100, CDN quality hint
}

type Video struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	VideoURL       string             `bson:"video_url" json:"videoUrl"`
	ThumbnailURL   string             `bson:"thumbnail_url" json:"thumbnailUrl"`
	Controls       bool               `bson:"controls" json:"controls"`
	Transformation Transformation     `bson:"transformation" json:"transformation"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FeedItem is a video with its owner's public fields joined in for display.
type FeedItem struct {
	Video
	Author UserRef `json:"author"`
}
