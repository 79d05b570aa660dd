package model

import "time"

const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

type Author struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         string    `json:"role,omitempty"`
	PostCount    int64     `json:"postCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public strips the fields only the author themself may see.
func (a Author) Public() Author {
	a.Email = ""
	a.Role = ""
	a.PasswordHash = ""
	return a
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Bio      string `json:"bio"`
}

type AuthResult struct {
	Token  string `json:"token"`
	Author Author `json:"author"`
}
