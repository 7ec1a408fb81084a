package testhelpers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/whamhub/backend/internal/models"
	"github.com/whamhub/backend/internal/types"
)

// MockTokenVerifier is a mock implementation of the middleware.TokenVerifier interface
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyToken(token string) (*types.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Identity), args.Error(1)
}

// MockProfileService is a mock implementation of the service.IProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) FetchOrCreate(ctx context.Context, identity *types.Identity) (*types.Profile, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, identity *types.Identity, req *types.UpdateProfileRequest) (*types.Profile, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

func (m *MockProfileService) UploadAvatar(ctx context.Context, identity *types.Identity, content io.Reader, contentType, filename string) (*types.Profile, error) {
	args := m.Called(ctx, identity, content, contentType, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

// MockProfileStore is a mock implementation of the service.IProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) FetchByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) Insert(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileStore) Upsert(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// FakeAvatarStore is an in-memory service.IAvatarStore that records
// uploads and removals and signs paths deterministically.
type FakeAvatarStore struct {
	Stored   []string
	Removed  []string
	FailPut  bool
	FailSign bool
}

func (f *FakeAvatarStore) Store(ctx context.Context, identityID string, content io.Reader, contentType, filename string) (string, error) {
	if f.FailPut {
		return "", io.ErrClosedPipe
	}
	path := identityID + "/" + filename
	f.Stored = append(f.Stored, path)
	return path, nil
}

func (f *FakeAvatarStore) SignURL(ctx context.Context, path string, ttl time.Duration) string {
	if f.FailSign || path == "" {
		return ""
	}
	return "https://storage.test/sign/" + path + "?ttl=" + ttl.String()
}

func (f *FakeAvatarStore) Remove(ctx context.Context, path string) error {
	f.Removed = append(f.Removed, path)
	return nil
}
