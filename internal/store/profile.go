package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/oapi-codegen/nullable"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/whamhub/backend/internal/models"
	"github.com/whamhub/backend/internal/types"
)

// ProfileStore translates between profile rows and the relational store.
// The id column is both primary key and upsert conflict key, so the
// store enforces the one-row-per-identity invariant.
type ProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a new ProfileStore instance
func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// FetchByID returns the profile row for the given identity id, or
// (nil, nil) when no row exists. Absence is a valid outcome, not a
// failure.
func (s *ProfileStore) FetchByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &profile, nil
}

// Insert creates a row for a first-time identity. A concurrent insert of
// the same id surfaces as gorm.ErrDuplicatedKey for the caller to
// resolve with a read.
func (s *ProfileStore) Insert(ctx context.Context, profile *models.Profile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Upsert writes the specified fields scoped to the identity id, creating
// the row when absent. Fields omitted from the request leave their
// columns untouched; fields carrying an explicit null clear them.
func (s *ProfileStore) Upsert(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error) {
	row := models.Profile{ID: id}
	assignments := map[string]interface{}{}

	if value, specified := stringAssignment(req.DisplayName); specified {
		assignments["display_name"] = orEmpty(value)
		row.DisplayName = orEmpty(value)
	}
	if value, specified := stringAssignment(req.FirstName); specified {
		assignments["first_name"] = value
		row.FirstName = value
	}
	if value, specified := stringAssignment(req.LastName); specified {
		assignments["last_name"] = value
		row.LastName = value
	}
	if value, specified := stringAssignment(req.DOB); specified {
		assignments["dob"] = value
		row.DOB = value
	}
	if value, specified := stringAssignment(req.GradientColor); specified {
		assignments["gradient_color"] = value
		row.GradientColor = value
	}
	if value, specified := stringAssignment(req.AvatarURL); specified {
		assignments["avatar_path"] = value
		row.AvatarPath = value
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(assignments),
	}
	if len(assignments) == 0 {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}
	}

	if err := s.db.WithContext(ctx).Clauses(conflict).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	// Re-read so the caller sees the untouched columns too, not just the
	// assignments echoed back.
	updated, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("upsert profile: row %s missing after write", id)
	}
	return updated, nil
}

// stringAssignment resolves a tri-state field into an upsert value.
// A nil value with specified=true means "clear the column".
func stringAssignment(field nullable.Nullable[string]) (value *string, specified bool) {
	if !field.IsSpecified() {
		return nil, false
	}
	if field.IsNull() {
		return nil, true
	}
	v, err := field.Get()
	if err != nil {
		return nil, false
	}
	return &v, true
}

func orEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
