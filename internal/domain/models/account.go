package models

import "time"

// CreatedAtLayout is the ISO 8601 form created_at is stored in.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Account is one registration entry as persisted in the accounts slot.
type Account struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	GovernmentID string `json:"government_id"`
	CreatedAt    string `json:"created_at"`
}

// Profile is the part of an Account that is safe to hand back to a caller.
type Profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	GovernmentID string `json:"government_id"`
	CreatedAt    string `json:"created_at"`
}

func (a Account) Profile() Profile {
	return Profile{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		GovernmentID: a.GovernmentID,
		CreatedAt:    a.CreatedAt,
	}
}

// FormatCreatedAt renders t the way created_at is stored: UTC, millisecond precision.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}
