package types

// Profile is the outward JSON shape of a profile. AvatarURL, when
// present, is a freshly signed time-limited URL regenerated on every
// response and never persisted.
type Profile struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	DisplayName   string   `json:"displayName"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	DOB           *string  `json:"dob"`
	GradientColor string   `json:"gradientColor"`
	Challenges    []string `json:"challenges"`
	AvatarURL     *string  `json:"avatarUrl"`
	CreatedAt     *string  `json:"createdAt"`
}
