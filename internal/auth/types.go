package auth

import "time"

// User is the principal resolved from credentials or a token.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	// RefreshToken holds the single currently valid refresh token for this
	// account, or "" when none is outstanding. Overwriting it on login is the
	// revocation point for any previously issued refresh token.
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user. It never carries the password hash or
// the stored refresh token.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}
