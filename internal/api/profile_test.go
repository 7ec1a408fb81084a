package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/whamhub/backend/internal/testhelpers"
	"github.com/whamhub/backend/internal/types"
)

func testIdentity() *types.Identity {
	return &types.Identity{
		ID:    uuid.New(),
		Email: "ann@example.com",
	}
}

func testContext(t *testing.T, identity *types.Identity, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if identity != nil {
		c.Set("identity", identity)
	}
	return c, w
}

func decodeProfile(t *testing.T, body *bytes.Buffer) types.Profile {
	t.Helper()
	var resp struct {
		Profile types.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp.Profile
}

func TestGetProfile(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	expected := &types.Profile{
		ID:          identity.ID.String(),
		Email:       identity.Email,
		DisplayName: "Ann Lee",
	}
	mockService.On("FetchOrCreate", mock.Anything, identity).Return(expected, nil)

	c, w := testContext(t, identity, httptest.NewRequest(http.MethodGet, "/profile", nil))
	handler.GetProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeProfile(t, w.Body)
	assert.Equal(t, "Ann Lee", profile.DisplayName)
	assert.Nil(t, profile.AvatarURL)
}

func TestGetProfileWithoutSession(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)

	c, w := testContext(t, nil, httptest.NewRequest(http.MethodGet, "/profile", nil))
	handler.GetProfile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "FetchOrCreate")
}

func TestGetProfileServiceFailure(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	mockService.On("FetchOrCreate", mock.Anything, identity).Return(nil, assert.AnError)

	c, w := testContext(t, identity, httptest.NewRequest(http.MethodGet, "/profile", nil))
	handler.GetProfile(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), assert.AnError.Error())
}

func TestUpdateProfile(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	expected := &types.Profile{
		ID:          identity.ID.String(),
		DisplayName: "Annie",
	}
	mockService.On("Update", mock.Anything, identity, mock.MatchedBy(func(req *types.UpdateProfileRequest) bool {
		if !req.DisplayName.IsSpecified() || req.DisplayName.IsNull() {
			return false
		}
		v, _ := req.DisplayName.Get()
		// avatarUrl was omitted and must stay unspecified
		return v == "Annie" && !req.AvatarURL.IsSpecified()
	})).Return(expected, nil)

	body := bytes.NewBufferString(`{"displayName":"Annie"}`)
	req := httptest.NewRequest(http.MethodPut, "/profile", body)
	req.Header.Set("Content-Type", "application/json")

	c, w := testContext(t, identity, req)
	handler.UpdateProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Annie", decodeProfile(t, w.Body).DisplayName)
	mockService.AssertExpectations(t)
}

func TestUpdateProfileNullClearsAvatar(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	mockService.On("Update", mock.Anything, identity, mock.MatchedBy(func(req *types.UpdateProfileRequest) bool {
		return req.AvatarURL.IsSpecified() && req.AvatarURL.IsNull()
	})).Return(&types.Profile{ID: identity.ID.String()}, nil)

	body := bytes.NewBufferString(`{"avatarUrl":null}`)
	req := httptest.NewRequest(http.MethodPut, "/profile", body)
	req.Header.Set("Content-Type", "application/json")

	c, w := testContext(t, identity, req)
	handler.UpdateProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdateProfileInvalidBody(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	body := bytes.NewBufferString(`{"displayName":`)
	req := httptest.NewRequest(http.MethodPut, "/profile", body)
	req.Header.Set("Content-Type", "application/json")

	c, w := testContext(t, identity, req)
	handler.UpdateProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Update")
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUploadAvatar(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	signed := "https://storage.test/sign/abc"
	expected := &types.Profile{
		ID:        identity.ID.String(),
		AvatarURL: &signed,
	}
	mockService.On("UploadAvatar", mock.Anything, identity, mock.Anything, mock.Anything, "photo.jpg").
		Return(expected, nil)

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/avatar", body)
	req.Header.Set("Content-Type", contentType)

	c, w := testContext(t, identity, req)
	handler.UploadAvatar(c)

	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeProfile(t, w.Body)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, signed, *profile.AvatarURL)
}

func TestUploadAvatarMissingFile(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)
	identity := testIdentity()

	body, contentType := multipartBody(t, "attachment", "photo.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/avatar", body)
	req.Header.Set("Content-Type", contentType)

	c, w := testContext(t, identity, req)
	handler.UploadAvatar(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing file")
	mockService.AssertNotCalled(t, "UploadAvatar")
}

func TestUploadAvatarWithoutSession(t *testing.T) {
	mockService := new(testhelpers.MockProfileService)
	handler := NewProfileHandler(mockService)

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/avatar", body)
	req.Header.Set("Content-Type", contentType)

	c, w := testContext(t, nil, req)
	handler.UploadAvatar(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "UploadAvatar")
}
