// Package convert maps domain entities to and from their JSON wire shapes.
package convert

import (
	"time"

	u "github.com/gofrs/uuid/v5"

	model "github.com/and161185/studyhub/internal/model"
)

// --- Accounts ---

// Account is the signup/signin response body.
type Account struct {
	ID          string   `json:"_id"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Token       string   `json:"token,omitempty"`
}

// SignupRequest is the signup body.
type SignupRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// SigninRequest is the signin body.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToAccount renders an account with its access token.
func ToAccount(a model.Account, tok model.Tokens) Account {
	out := Account{
		ID:       a.ID.String(),
		Email:    a.Email,
		Username: a.Username,
		Role:     string(a.Role),
		Token:    tok.AccessToken,
	}
	if a.User != nil {
		out.FirstName, out.LastName = a.User.FirstName, a.User.LastName
	}
	if a.Admin != nil {
		out.Permissions = a.Admin.Permissions
	}
	return out
}

// --- Cards ---

// Card is the wire shape of both card variants; fields of the other variant are omitted.
type Card struct {
	ID           string    `json:"_id"`
	Deck         string    `json:"deck"`
	User         string    `json:"user"`
	Type         string    `json:"type"`
	Term         string    `json:"term,omitempty"`
	Definition   string    `json:"definition,omitempty"`
	Question     string    `json:"question,omitempty"`
	ChoiceNumber int       `json:"choiceNumber,omitempty"`
	Choices      []string  `json:"choices,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CardRequest is the create/update body. Deck is kept as text so a malformed id
// can be told apart from an absent one.
type CardRequest struct {
	Deck         string   `json:"deck"`
	Type         string   `json:"type"`
	Term         string   `json:"term"`
	Definition   string   `json:"definition"`
	Question     string   `json:"question"`
	ChoiceNumber int      `json:"choiceNumber"`
	Choices      []string `json:"choices"`
}

// ToCard renders a card.
func ToCard(c model.Card) Card {
	out := Card{
		ID:        c.ID.String(),
		Deck:      c.DeckID.String(),
		User:      c.OwnerID.String(),
		Type:      string(c.Variant),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Flashcard != nil {
		out.Term, out.Definition = c.Flashcard.Term, c.Flashcard.Definition
	}
	if c.Multicard != nil {
		out.Question = c.Multicard.Question
		out.ChoiceNumber = c.Multicard.ChoiceNumber
		out.Choices = c.Multicard.Choices
	}
	return out
}

// ToCards renders a card list; nil becomes an empty array.
func ToCards(cs []model.Card) []Card {
	out := make([]Card, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCard(c))
	}
	return out
}

// ParseDeckRef parses an optional deck reference. The empty string gives uuid.Nil.
func ParseDeckRef(s string) (u.UUID, error) {
	if s == "" {
		return u.Nil, nil
	}
	return u.FromString(s)
}

// --- Decks ---

// Deck is the wire shape of a deck with its cards populated.
type Deck struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	User      string    `json:"user"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeckRequest is the create/rename body.
type DeckRequest struct {
	Name string `json:"name"`
}

// DeckList is the list response.
type DeckList struct {
	Count int    `json:"count"`
	Data  []Deck `json:"data"`
}

// ToDeck renders a deck.
func ToDeck(d model.Deck) Deck {
	return Deck{
		ID:        d.ID.String(),
		Name:      d.Name,
		User:      d.OwnerID.String(),
		Cards:     ToCards(d.Cards),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDeckList renders decks with their count.
func ToDeckList(ds []model.Deck) DeckList {
	out := DeckList{Count: len(ds), Data: make([]Deck, 0, len(ds))}
	for _, d := range ds {
		out.Data = append(out.Data, ToDeck(d))
	}
	return out
}

// --- Transcripts ---

// Transcript is the wire shape of a transcript.
type Transcript struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TranscriptRequest is the create/update body.
type TranscriptRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
}

// ToTranscript renders a transcript.
func ToTranscript(t model.Transcript) Transcript {
	return Transcript{
		ID:        t.ID.String(),
		Title:     t.Title,
		Content:   t.Content,
		Summary:   t.Summary,
		User:      t.OwnerID.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTranscripts renders a transcript list.
func ToTranscripts(ts []model.Transcript) []Transcript {
	out := make([]Transcript, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTranscript(t))
	}
	return out
}

// --- Generation ---

// PromptRequest is the summarize and make-flashcard body.
type PromptRequest struct {
	Num    int    `json:"num"`
	Prompt string `json:"prompt"`
}
