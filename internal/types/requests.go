package types

import (
	"github.com/oapi-codegen/nullable"
)

// UpdateProfileRequest is the PUT /profile payload. Every field is
// tri-state: omitted leaves the stored column untouched, an explicit
// JSON null clears it, a value overwrites it.
//
// AvatarURL accepts a previously returned storage path, not a signed
// URL; signing happens on the way out.
type UpdateProfileRequest struct {
	DisplayName   nullable.Nullable[string] `json:"displayName,omitempty"`
	FirstName     nullable.Nullable[string] `json:"firstName,omitempty"`
	LastName      nullable.Nullable[string] `json:"lastName,omitempty"`
	DOB           nullable.Nullable[string] `json:"dob,omitempty"`
	GradientColor nullable.Nullable[string] `json:"gradientColor,omitempty"`
	AvatarURL     nullable.Nullable[string] `json:"avatarUrl,omitempty"`
}

// HasChanges reports whether any field was specified at all.
func (r *UpdateProfileRequest) HasChanges() bool {
	return r.DisplayName.IsSpecified() ||
		r.FirstName.IsSpecified() ||
		r.LastName.IsSpecified() ||
		r.DOB.IsSpecified() ||
		r.GradientColor.IsSpecified() ||
		r.AvatarURL.IsSpecified()
}
