package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/repository"
	"github.com/rajput-vishal01/videovault/internal/thumbnail"
	"github.com/rajput-vishal01/videovault/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateVideoRequest is the metadata-create body submitted after the file has
// already landed at the CDN.
type CreateVideoRequest struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	VideoURL       string                 `json:"videoUrl"`
	Tags           []string               `json:"tags,omitempty"`
	Controls       *bool                  `json:"controls,omitempty"`
	Transformation *models.Transformation `json:"transformation,omitempty"`
}

type VideoService struct {
	videos repository.VideoRepository
	users  repository.UserRepository
	logger *zap.SugaredLogger
}

func NewVideoService(videos repository.VideoRepository, users repository.UserRepository, logger *zap.SugaredLogger) *VideoService {
	return &VideoService{videos: videos, users: users, logger: logger}
}

// Create persists a video record for userID. Title, description and videoUrl
// are required; absence fails before anything is written. Thumbnail derivation
// failure yields an empty thumbnail URL, not an error.
func (s *VideoService) Create(ctx context.Context, userID string, req CreateVideoRequest) (*models.Video, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.VideoURL) == "" {
		return nil, utils.ErrValidation
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	controls := true
	if req.Controls != nil {
		controls = *req.Controls
	}

	tr := models.Transformation{
		Height:  models.DefaultHeight,
		Width:   models.DefaultWidth,
		Quality: 100,
	}
	if req.Transformation != nil {
		if req.Transformation.Height > 0 {
			tr.Height = req.Transformation.Height
		}
		if req.Transformation.Width > 0 {
			tr.Width = req.Transformation.Width
		}
		if q := req.Transformation.Quality; q != 0 {
			if q < 1 || q > 100 {
				return nil, fmt.Errorf("%w: quality must be between 1 and 100", utils.ErrValidation)
			}
			tr.Quality = q
		}
	}

	v := &models.Video{
		UserID:         oid,
		Title:          req.Title,
		Description:    req.Description,
		VideoURL:       req.VideoURL,
		ThumbnailURL:   thumbnail.Derive(req.VideoURL),
		Controls:       controls,
		Transformation: tr,
		Tags:           req.Tags,
	}
	if err := s.videos.Insert(ctx, v); err != nil {
		s.logger.Errorw("video insert failed", "user_id", userID, "error", err)
		return nil, utils.ErrInternal
	}
	return v, nil
}

// Feed lists every video newest-first with the owner's public fields joined
// in via a second users query.
func (s *VideoService) Feed(ctx context.Context) ([]models.FeedItem, error) {
	videos, err := s.videos.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("feed listing failed", "error", err)
		return nil, utils.ErrInternal
	}

	seen := map[primitive.ObjectID]bool{}
	ids := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		if !seen[v.UserID] {
			seen[v.UserID] = true
			ids = append(ids, v.UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Errorw("feed author lookup failed", "error", err)
		return nil, utils.ErrInternal
	}
	refs := make(map[primitive.ObjectID]models.UserRef, len(users))
	for i := range users {
		refs[users[i].ID] = users[i].Ref()
	}

	items := make([]models.FeedItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, models.FeedItem{Video: v, Author: refs[v.UserID]})
	}
	return items, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err == repository.ErrVideoNotFound {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		s.logger.Errorw("video lookup failed", "id", id, "error", err)
		return nil, utils.ErrInternal
	}
	return v, nil
}
