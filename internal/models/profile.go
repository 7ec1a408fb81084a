package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ChallengeList holds the earned challenge badges. Postgres stores a
// real text[] column; the sqlite test schema degrades to text holding
// the array literal.
type ChallengeList []string

func (ChallengeList) GormDataType() string {
	return "text"
}

func (ChallengeList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l ChallengeList) Value() (driver.Value, error) {
	if l == nil {
		l = ChallengeList{}
	}
	return pq.StringArray(l).Value()
}

func (l *ChallengeList) Scan(src interface{}) error {
	return (*pq.StringArray)(l).Scan(src)
}

// Profile is the persisted row backing a user profile. The row id equals
// the auth provider's identity id, so the primary key doubles as the
// upsert conflict key and guarantees one row per identity.
//
// AvatarPath holds the stable storage path of the uploaded object, never
// a signed URL.
type Profile struct {
	ID            string        `gorm:"type:varchar(36);primarykey" json:"id"`
	DisplayName   string        `gorm:"size:120;not null" json:"display_name"`
	FirstName     *string       `gorm:"size:120" json:"first_name"`
	LastName      *string       `gorm:"size:120" json:"last_name"`
	DOB           *string       `gorm:"column:dob;size:10" json:"dob"`
	AvatarPath    *string       `gorm:"size:255" json:"avatar_path"`
	GradientColor *string       `gorm:"size:32" json:"gradient_color"`
	Challenges    ChallengeList `json:"challenges"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
