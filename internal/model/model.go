// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Role selects which profile an account carries.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// UserProfile is the USER-role payload.
type UserProfile struct {
	FirstName string
	LastName  string
}

// AdminProfile is the ADMIN-role payload.
type AdminProfile struct {
	Permissions []string
}

// Account is a registered identity. Exactly one of User/Admin is set, matching Role.
// Decks and transcripts are looked up by owner, never stored on the account.
type Account struct {
	ID        uuid.UUID // PK
	Email     string    // unique
	Username  string    // unique
	PwdHash   string    // encoded Argon2id hash
	Role      Role
	User      *UserProfile
	Admin     *AdminProfile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deck is a named, owned collection of cards.
type Deck struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Cards     []Card // derived from cards.deck_id, filled by services
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant is the immutable card type tag.
type Variant string

const (
	VariantFlashcard Variant = "Flashcard"
	VariantMulticard Variant = "Multicard"
)

// Valid reports whether v is a known card type.
func (v Variant) Valid() bool { return v == VariantFlashcard || v == VariantMulticard }

// Flashcard is a term/definition pair.
type Flashcard struct {
	Term       string
	Definition string
}

// Multicard is a multiple-choice question.
type Multicard struct {
	Question     string
	ChoiceNumber int
	Choices      []string
}

// Card belongs to exactly one deck. Exactly one of Flashcard/Multicard is set, matching Variant.
type Card struct {
	ID        uuid.UUID
	DeckID    uuid.UUID
	OwnerID   uuid.UUID
	Variant   Variant
	Flashcard *Flashcard
	Multicard *Multicard
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transcript is the stored text of a lesson with an optional summary.
type Transcript struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Content   string
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GeneratedFlashcard is one term/definition pair produced by the oracle.
type GeneratedFlashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}
