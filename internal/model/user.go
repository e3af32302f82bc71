package model

import "io"

// User represents a user in the database.
// Optional profile fields are nil until the first profile edit.
type User struct {
	ID                 int64
	Username           string
	Email              string
	PasswordHash       string
	Number             *int64
	Department         *string
	Classification     *string
	Hobby              *string
	BusinessExperience *string
	ProfileImage       *string
}

// ProfileUpdate carries the fields written by a profile edit. Every field
// overwrites the stored value; ProfileImage is only written when non-nil.
type ProfileUpdate struct {
	Number             *int64
	Department         *string
	Classification     *string
	Hobby              *string
	BusinessExperience *string
	ProfileImage       *string
}

// ImageUpload is a profile image received with a profile edit.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProfileEditRequest is a decoded profile edit: the target user, the fields
// to write, and an optional image.
type ProfileEditRequest struct {
	TargetID int64
	Update   ProfileUpdate
	Image    *ImageUpload
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	Token string `json:"token"`
}

// Projection selects which User fields cross the HTTP boundary.
type Projection int

const (
	// ProjectionFull includes the password hash.
	ProjectionFull Projection = iota
	// ProjectionPublic drops every field on the sensitive denylist.
	ProjectionPublic
)

// UserResponse is the JSON shape of a user. Password is omitted when empty,
// which is how ProjectionPublic removes it.
type UserResponse struct {
	ID                 int64   `json:"id"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	Password           string  `json:"password,omitempty"`
	Number             *int64  `json:"number"`
	Department         *string `json:"department"`
	Classification     *string `json:"classification"`
	Hobby              *string `json:"hoby"`
	BusinessExperience *string `json:"business_experience"`
	ProfileImage       *string `json:"profile_image"`
}

// NewUserResponse shapes u for output under the given projection.
func NewUserResponse(u *User, p Projection) UserResponse {
	resp := UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		Password:           u.PasswordHash,
		Number:             u.Number,
		Department:         u.Department,
		Classification:     u.Classification,
		Hobby:              u.Hobby,
		BusinessExperience: u.BusinessExperience,
		ProfileImage:       u.ProfileImage,
	}
	if p == ProjectionPublic {
		resp.Password = ""
	}
	return resp
}

// NewUserResponses shapes a slice of users; it never returns nil.
func NewUserResponses(users []User, p Projection) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i], p)
	}
	return out
}
