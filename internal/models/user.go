// ABOUTME: User and authentication request/response models
// ABOUTME: Defines login, register, refresh and profile API contracts

package models

import "strings"

// User is the account record returned by the backend
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	FamilyID    *int   `json:"family_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// DisplayName prefers the full name
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Username
}

// HasFamily reports whether the user belongs to a family
func (u *User) HasFamily() bool {
	return u.FamilyID != nil && *u.FamilyID > 0
}

// Valid reports whether the record carries an identity. Records without
// one are treated as absent rather than defaulted.
func (u *User) Valid() bool {
	return u != nil && u.ID > 0 && strings.TrimSpace(u.Username) != ""
}

// LoginRequest represents credentials for authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := required("username", r.Username); err != nil {
		return err
	}
	return required("password", r.Password)
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	if len(r.Password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	if err := ValidateEmail("email", r.Email); err != nil {
		return err
	}
	return validateProfile(r.FullName, r.Age, r.PhoneNumber)
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the new access token; some backends rotate the
// refresh token too
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ProfileUpdate changes the current user's own profile. Empty fields are
// left untouched by the server.
type ProfileUpdate struct {
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (p ProfileUpdate) Validate() error {
	if p == (ProfileUpdate{}) {
		return invalid("profile", "nothing to update")
	}
	if p.Email != "" {
		if err := ValidateEmail("email", p.Email); err != nil {
			return err
		}
	}
	return validateProfile(p.FullName, p.Age, p.PhoneNumber)
}

// UserInput is the admin create/update payload for another account
type UserInput struct {
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
	FamilyID *int   `json:"family_id,omitempty"`
}

// ValidateCreate checks a new account payload
func (u UserInput) ValidateCreate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if len(u.Password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	return ValidateEmail("email", u.Email)
}

// ValidateUpdate checks an update payload for an existing account
func (u UserInput) ValidateUpdate() error {
	if u.UserID <= 0 {
		return invalid("user_id", "is required")
	}
	if u.Username != "" {
		if err := ValidateUsername(u.Username); err != nil {
			return err
		}
	}
	if u.Password != "" && len(u.Password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	if u.Email != "" {
		return ValidateEmail("email", u.Email)
	}
	return nil
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Results []User `json:"results"`
	Count   int    `json:"count"`
}

func validateProfile(fullName string, age int, phone string) error {
	if err := maxLen("full_name", fullName, 255); err != nil {
		return err
	}
	if age < 0 || age > 150 {
		return invalid("age", "must be between 0 and 150")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return invalid("phone_number", "invalid phone number: %s", SanitizeForLog(phone))
	}
	return nil
}
