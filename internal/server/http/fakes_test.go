package httpserver

import (
	"context"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/service"
)

var (
	aliceID = uuid.Must(uuid.FromString("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"))
	deckID  = uuid.Must(uuid.FromString("dddddddd-dddd-4ddd-8ddd-dddddddddddd"))
	cardID  = uuid.Must(uuid.FromString("cccccccc-cccc-4ccc-8ccc-cccccccccccc"))
)

func alice() model.Account {
	return model.Account{
		ID: aliceID, Email: "alice@x.io", Username: "alice", Role: model.RoleUser,
		User: &model.UserProfile{FirstName: "Alice", LastName: "Smith"},
	}
}

type fakeAuth struct {
	registered service.RegisterInput
	regErr     error
	authErr    error
	authIP     string
	deleted    uuid.UUID
	deleteErr  error
}

var _ service.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, in service.RegisterInput) (model.Account, model.Tokens, error) {
	f.registered = in
	if f.regErr != nil {
		return model.Account{}, model.Tokens{}, f.regErr
	}
	return alice(), model.Tokens{AccessToken: "good"}, nil
}
func (f *fakeAuth) Authenticate(_ context.Context, _, _, ip string) (model.Account, model.Tokens, error) {
	f.authIP = ip
	if f.authErr != nil {
		return model.Account{}, model.Tokens{}, f.authErr
	}
	return alice(), model.Tokens{AccessToken: "good"}, nil
}
func (f *fakeAuth) VerifyToken(_ context.Context, token string) (model.Account, error) {
	if token == "gone" {
		return model.Account{}, errs.AccountGone()
	}
	if token != "good" {
		return model.Account{}, errs.ErrUnauthorized
	}
	return alice(), nil
}
func (f *fakeAuth) DeleteSelf(_ context.Context, id uuid.UUID) error {
	f.deleted = id
	return f.deleteErr
}

type fakeDecks struct {
	owner    uuid.UUID
	name     string
	err      error
	cardsFor uuid.UUID
}

var _ service.DeckService = (*fakeDecks)(nil)

func (f *fakeDecks) deck() model.Deck {
	return model.Deck{ID: deckID, OwnerID: aliceID, Name: f.name, CreatedAt: time.Unix(0, 0).UTC()}
}
func (f *fakeDecks) Create(_ context.Context, owner uuid.UUID, name string) (model.Deck, error) {
	f.owner, f.name = owner, name
	return f.deck(), f.err
}
func (f *fakeDecks) List(_ context.Context, owner uuid.UUID) ([]model.Deck, error) {
	f.owner = owner
	return []model.Deck{f.deck()}, f.err
}
func (f *fakeDecks) Get(_ context.Context, owner, _ uuid.UUID) (model.Deck, error) {
	f.owner = owner
	return f.deck(), f.err
}
func (f *fakeDecks) Rename(_ context.Context, owner, _ uuid.UUID, name string) (model.Deck, error) {
	f.owner, f.name = owner, name
	return f.deck(), f.err
}
func (f *fakeDecks) Delete(_ context.Context, owner, _ uuid.UUID) error {
	f.owner = owner
	return f.err
}
func (f *fakeDecks) Cards(_ context.Context, owner, id uuid.UUID) ([]model.Card, error) {
	f.owner, f.cardsFor = owner, id
	return nil, f.err
}

type fakeCards struct {
	in      service.CardInput
	patch   service.CardPatch
	variant model.Variant
	err     error
}

var _ service.CardService = (*fakeCards)(nil)

func (f *fakeCards) Create(_ context.Context, _ uuid.UUID, in service.CardInput) (model.Card, error) {
	f.in = in
	return model.Card{ID: cardID, DeckID: in.DeckID, OwnerID: aliceID, Variant: in.Variant,
		Flashcard: &model.Flashcard{Term: in.Term, Definition: in.Definition}}, f.err
}
func (f *fakeCards) List(_ context.Context, _ uuid.UUID, v model.Variant) ([]model.Card, error) {
	f.variant = v
	return []model.Card{}, f.err
}
func (f *fakeCards) Get(_ context.Context, _, _ uuid.UUID, v model.Variant) (model.Card, error) {
	f.variant = v
	return model.Card{ID: cardID}, f.err
}
func (f *fakeCards) Update(_ context.Context, _, _ uuid.UUID, v model.Variant, p service.CardPatch) (model.Card, error) {
	f.variant, f.patch = v, p
	return model.Card{ID: cardID}, f.err
}
func (f *fakeCards) Delete(_ context.Context, _, _ uuid.UUID, v model.Variant) error {
	f.variant = v
	return f.err
}

type fakeTranscripts struct {
	in  service.TranscriptInput
	err error
}

var _ service.TranscriptService = (*fakeTranscripts)(nil)

func (f *fakeTranscripts) Create(_ context.Context, owner uuid.UUID, in service.TranscriptInput) (model.Transcript, error) {
	f.in = in
	return model.Transcript{OwnerID: owner, Title: in.Title, Content: in.Content}, f.err
}
func (f *fakeTranscripts) List(context.Context, uuid.UUID) ([]model.Transcript, error) {
	return nil, f.err
}
func (f *fakeTranscripts) Get(context.Context, uuid.UUID, uuid.UUID) (model.Transcript, error) {
	return model.Transcript{}, f.err
}
func (f *fakeTranscripts) Update(_ context.Context, _, _ uuid.UUID, in service.TranscriptInput) (model.Transcript, error) {
	f.in = in
	return model.Transcript{Title: in.Title}, f.err
}
func (f *fakeTranscripts) Delete(context.Context, uuid.UUID, uuid.UUID) error { return f.err }

type fakeGeneration struct {
	reply    string
	cards    []model.GeneratedFlashcard
	err      error
	gotNum   int
	gotName  string
	gotAudio string
	panicNow bool
}

var _ service.GenerationService = (*fakeGeneration)(nil)

func (f *fakeGeneration) Summarize(_ context.Context, text string) (string, error) {
	if f.panicNow {
		panic("boom")
	}
	return f.reply, f.err
}
func (f *fakeGeneration) GenerateFlashcards(_ context.Context, n int, _ string) ([]model.GeneratedFlashcard, error) {
	f.gotNum = n
	return f.cards, f.err
}
func (f *fakeGeneration) Transcribe(_ context.Context, name string, r io.Reader, _ int64) (string, error) {
	b, _ := io.ReadAll(r)
	f.gotName, f.gotAudio = name, string(b)
	return f.reply, f.err
}
