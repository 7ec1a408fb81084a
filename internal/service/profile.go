package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
	"gorm.io/gorm"

	"github.com/whamhub/backend/internal/models"
	"github.com/whamhub/backend/internal/types"
)

// signedURLTTL is how long avatar URLs stay valid. URLs are regenerated
// on every read and never cached beyond a single response.
const signedURLTTL = 3600 * time.Second

// placeholderDisplayName seeds profiles whose identity carries neither a
// full name nor an email.
const placeholderDisplayName = "Player"

// ProfileService orchestrates the session identity, the profile rows and
// the avatar storage into fetch-or-create and update semantics.
type ProfileService struct {
	store   IProfileStore
	avatars IAvatarStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(store IProfileStore, avatars IAvatarStore) *ProfileService {
	return &ProfileService{
		store:   store,
		avatars: avatars,
	}
}

// FetchOrCreate returns the caller's profile, lazily creating the row on
// first authenticated fetch. Two concurrent first fetches race on the
// insert; the loser sees the store's duplicate-key conflict and falls
// back to reading the winner's row.
func (s *ProfileService) FetchOrCreate(ctx context.Context, identity *types.Identity) (*types.Profile, error) {
	id := identity.ID.String()

	row, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return s.mapProfile(ctx, row, identity), nil
	}

	row = seedProfile(identity)
	if err := s.store.Insert(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, fetchErr := s.store.FetchByID(ctx, id)
			if fetchErr != nil {
				return nil, fetchErr
			}
			if existing != nil {
				return s.mapProfile(ctx, existing, identity), nil
			}
		}
		return nil, err
	}

	return s.mapProfile(ctx, row, identity), nil
}

// Update writes the specified fields scoped to the caller's id and
// returns the refreshed profile. The avatar field accepts a previously
// returned storage path, or an explicit null to clear it.
func (s *ProfileService) Update(ctx context.Context, identity *types.Identity, req *types.UpdateProfileRequest) (*types.Profile, error) {
	row, err := s.store.Upsert(ctx, identity.ID.String(), req)
	if err != nil {
		return nil, err
	}
	return s.mapProfile(ctx, row, identity), nil
}

// UploadAvatar stores the image, then records its path on the profile.
// When the profile update fails after the object was written, the object
// is deleted again so failed updates do not leak storage.
func (s *ProfileService) UploadAvatar(ctx context.Context, identity *types.Identity, content io.Reader, contentType, filename string) (*types.Profile, error) {
	path, err := s.avatars.Store(ctx, identity.ID.String(), content, contentType, filename)
	if err != nil {
		return nil, err
	}

	req := &types.UpdateProfileRequest{
		AvatarURL: nullable.NewNullableWithValue(path),
	}
	profile, err := s.Update(ctx, identity, req)
	if err != nil {
		if rmErr := s.avatars.Remove(ctx, path); rmErr != nil {
			log.Printf("[ProfileService] orphaned avatar %s could not be removed: %v", path, rmErr)
		}
		return nil, err
	}

	return profile, nil
}

// mapProfile converts a row into the outward shape. The stored avatar
// path is resolved into a fresh signed URL; signing failure degrades to
// no avatar instead of failing the whole request.
func (s *ProfileService) mapProfile(ctx context.Context, row *models.Profile, identity *types.Identity) *types.Profile {
	profile := &types.Profile{
		ID:            row.ID,
		Email:         identity.Email,
		DisplayName:   row.DisplayName,
		DOB:           row.DOB,
		GradientColor: models.DefaultThemeID,
		Challenges:    []string{},
	}

	if row.FirstName != nil {
		profile.FirstName = *row.FirstName
	}
	if row.LastName != nil {
		profile.LastName = *row.LastName
	}
	if row.GradientColor != nil {
		profile.GradientColor = models.NormalizeThemeID(*row.GradientColor)
	}
	if len(row.Challenges) > 0 {
		profile.Challenges = append(profile.Challenges, row.Challenges...)
	}
	if !row.CreatedAt.IsZero() {
		createdAt := row.CreatedAt.UTC().Format(time.RFC3339)
		profile.CreatedAt = &createdAt
	}

	if row.AvatarPath != nil && *row.AvatarPath != "" {
		if url := s.avatars.SignURL(ctx, *row.AvatarPath, signedURLTTL); url != "" {
			profile.AvatarURL = &url
		}
	}

	return profile
}

// seedProfile derives the first-login row from identity metadata:
// display name from the full name, else the email, else a placeholder,
// with first/last split off the full name.
func seedProfile(identity *types.Identity) *models.Profile {
	row := &models.Profile{
		ID:          identity.ID.String(),
		DisplayName: placeholderDisplayName,
	}

	// The full name is user-settable metadata; blank padding means absent
	fullName := strings.TrimSpace(identity.FullName)

	switch {
	case fullName != "":
		row.DisplayName = fullName
	case identity.Email != "":
		row.DisplayName = identity.Email
	}

	if parts := strings.Fields(fullName); len(parts) > 0 {
		first := parts[0]
		row.FirstName = &first
		if rest := strings.Join(parts[1:], " "); rest != "" {
			row.LastName = &rest
		}
	}

	return row
}
