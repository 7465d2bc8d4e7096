package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for the catalog entities.
var (
	ErrEmptyDomainID       = errors.New("domain ID cannot be empty")
	ErrEmptyDomainName     = errors.New("domain name cannot be empty")
	ErrEmptyTechnologyID   = errors.New("technology ID cannot be empty")
	ErrEmptyTechnologyName = errors.New("technology name cannot be empty")
	ErrEmptySlug           = errors.New("slug cannot be empty")
	ErrInvalidSlug         = errors.New("slug may only contain lowercase letters, digits and hyphens")
)

var slugRE = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Domain is a top-level subject area of the catalog, e.g. "Web Development".
type Domain struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDomain creates a new Domain, deriving the slug from the name.
func NewDomain(name, description string) (*Domain, error) {
	d := &Domain{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Slug:        Slugify(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the Domain has valid data.
func (d *Domain) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDomainID
	}
	if d.Name == "" {
		return ErrEmptyDomainName
	}
	return validateSlug(d.Slug)
}

// Technology is a tool or language within a domain, e.g. "React" within
// "Web Development".
type Technology struct {
	ID          uuid.UUID `json:"id"`
	DomainID    uuid.UUID `json:"domain_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTechnology creates a new Technology under the given domain.
func NewTechnology(domainID uuid.UUID, name, description string) (*Technology, error) {
	tech := &Technology{
		ID:          uuid.New(),
		DomainID:    domainID,
		Name:        strings.TrimSpace(name),
		Slug:        Slugify(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := tech.Validate(); err != nil {
		return nil, err
	}

	return tech, nil
}

// Validate checks if the Technology has valid data.
func (t *Technology) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTechnologyID
	}
	if t.DomainID == uuid.Nil {
		return ErrEmptyDomainID
	}
	if t.Name == "" {
		return ErrEmptyTechnologyName
	}
	return validateSlug(t.Slug)
}

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func validateSlug(slug string) error {
	if slug == "" {
		return ErrEmptySlug
	}
	if !slugRE.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}
