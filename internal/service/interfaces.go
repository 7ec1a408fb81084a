package service

import (
	"context"
	"io"
	"time"

	"github.com/whamhub/backend/internal/models"
	"github.com/whamhub/backend/internal/types"
)

// IProfileStore is the row-level contract the profile service depends on.
type IProfileStore interface {
	FetchByID(ctx context.Context, id string) (*models.Profile, error)
	Insert(ctx context.Context, profile *models.Profile) error
	Upsert(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error)
}

// IAvatarStore is the object-storage contract the profile service depends on.
type IAvatarStore interface {
	Store(ctx context.Context, identityID string, content io.Reader, contentType, filename string) (string, error)
	SignURL(ctx context.Context, path string, ttl time.Duration) string
	Remove(ctx context.Context, path string) error
}

// IProfileService is the contract the HTTP boundary depends on.
type IProfileService interface {
	FetchOrCreate(ctx context.Context, identity *types.Identity) (*types.Profile, error)
	Update(ctx context.Context, identity *types.Identity, req *types.UpdateProfileRequest) (*types.Profile, error)
	UploadAvatar(ctx context.Context, identity *types.Identity, content io.Reader, contentType, filename string) (*types.Profile, error)
}
