package api

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Role is the user's role, mirrored from the token claims
	Role domain.Role `json:"role"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateDomainRequest defines the payload for creating a domain.
type CreateDomainRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateDomainRequest defines the payload for a partial domain update.
type UpdateDomainRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CreateTechnologyRequest defines the payload for creating a technology.
type CreateTechnologyRequest struct {
	DomainID    uuid.UUID `json:"domain_id"   validate:"required"`
	Name        string    `json:"name"        validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=2000"`
}

// UpdateTechnologyRequest defines the payload for a partial technology update.
type UpdateTechnologyRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CreateTutorialRequest defines the payload for creating a tutorial.
type CreateTutorialRequest struct {
	TechnologyID uuid.UUID         `json:"technology_id" validate:"required"`
	Title        string            `json:"title"         validate:"required,min=1,max=300"`
	Description  string            `json:"description"   validate:"max=5000"`
	Difficulty   domain.Difficulty `json:"difficulty"    validate:"omitempty,oneof=beginner intermediate advanced"`
}

// UpdateTutorialRequest defines the payload for a partial tutorial update.
type UpdateTutorialRequest struct {
	Title       *string            `json:"title,omitempty"        validate:"omitempty,min=1,max=300"`
	Description *string            `json:"description,omitempty"  validate:"omitempty,max=5000"`
	Difficulty  *domain.Difficulty `json:"difficulty,omitempty"   validate:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished *bool              `json:"is_published,omitempty"`
}

// CreateLessonRequest defines the payload for creating a lesson. Content is
// passed through raw so the sanitization pipeline sees exactly what the
// editor sent.
type CreateLessonRequest struct {
	Title    string          `json:"title"    validate:"required,min=1,max=300"`
	Order    int             `json:"order"    validate:"required,min=1"`
	Duration int             `json:"duration" validate:"required,min=1"`
	Content  json.RawMessage `json:"content"`
}

// UpdateLessonRequest defines the payload for a partial lesson update.
type UpdateLessonRequest struct {
	Title    *string         `json:"title,omitempty"    validate:"omitempty,min=1,max=300"`
	Order    *int            `json:"order,omitempty"    validate:"omitempty,min=1"`
	Duration *int            `json:"duration,omitempty" validate:"omitempty,min=1"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// ReorderLessonsRequest defines the payload for the atomic reorder endpoint.
type ReorderLessonsRequest struct {
	Lessons []LessonOrderPair `json:"lessons" validate:"required,min=1,dive"`
}

// LessonOrderPair is one (lesson, order) assignment of a reorder batch.
type LessonOrderPair struct {
	LessonID uuid.UUID `json:"lesson_id" validate:"required"`
	Order    int       `json:"order"     validate:"required,min=1"`
}

// PublishLessonRequest defines the payload for the lesson publish endpoint.
type PublishLessonRequest struct {
	IsPublished bool `json:"is_published"`
}
