package users

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// BirthDateLayout is the wire format of UserRecord.BirthDate
const BirthDateLayout = "2006-01-02"

// UserRecord is the client-facing shape of one listed user. Email, Role and
// Division are null when the joined row is missing.
type UserRecord struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	FullName    string          `json:"fullName"`
	Email       *string         `json:"email"`
	BirthDate   string          `json:"birthDate"`
	Bio         string          `json:"bio"`
	LongBio     string          `json:"longBio"`
	ProfileJSON json.RawMessage `json:"profileJson"`
	Address     string          `json:"address"`
	PhoneNumber string          `json:"phoneNumber"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Role        *string         `json:"role"`
	Division    *string         `json:"division"`
}

// ListResponse is the 200 body of GET /api/users
type ListResponse struct {
	Users      []UserRecord `json:"users"`
	Total      int          `json:"total"`
	FilteredBy string       `json:"filteredBy"`
	Message    string       `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// userRow mirrors the select list of the listing query
type userRow struct {
	ID           int64              `db:"id"`
	Username     string             `db:"username"`
	FullName     string             `db:"full_name"`
	BirthDate    time.Time          `db:"birth_date"`
	Bio          string             `db:"bio"`
	LongBio      string             `db:"long_bio"`
	ProfileJSON  types.NullJSONText `db:"profile_json"`
	Address      string             `db:"address"`
	PhoneNumber  string             `db:"phone_number"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
	Email        sql.NullString     `db:"email"`
	Role         sql.NullString     `db:"role"`
	DivisionName sql.NullString     `db:"division_name"`
}

// toRecord renames columns onto the wire shape. Nothing is derived.
func (r userRow) toRecord() (UserRecord, error) {
	var profile json.RawMessage
	if r.ProfileJSON.Valid {
		if !json.Valid(r.ProfileJSON.JSONText) {
			return UserRecord{}, fmt.Errorf("user %d: profile_json is not valid JSON", r.ID)
		}
		profile = json.RawMessage(r.ProfileJSON.JSONText)
	}

	return UserRecord{
		ID:          r.ID,
		Username:    r.Username,
		FullName:    r.FullName,
		Email:       nullable(r.Email),
		BirthDate:   r.BirthDate.Format(BirthDateLayout),
		Bio:         r.Bio,
		LongBio:     r.LongBio,
		ProfileJSON: profile,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Role:        nullable(r.Role),
		Division:    nullable(r.DivisionName),
	}, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
