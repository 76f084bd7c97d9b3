package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/limiter"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/repository"
)

type fakeAccounts struct {
	byID map[uuid.UUID]*model.Account

	createErr error
	getErr    error
	takenErr  error
}

var _ repository.AccountRepository = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: map[uuid.UUID]*model.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, x := range f.byID {
		if x.Email == a.Email {
			return errs.ErrEmailTaken
		}
		if x.Username == a.Username {
			return errs.ErrUsernameTaken
		}
	}
	cpy := *a
	f.byID[a.ID] = &cpy
	return nil
}
func (f *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}
func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.byID {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (f *fakeAccounts) Taken(_ context.Context, email, username string) (bool, bool, error) {
	if f.takenErr != nil {
		return false, false, f.takenErr
	}
	var e, u bool
	for _, a := range f.byID {
		e = e || a.Email == email
		u = u || a.Username == username
	}
	return e, u, nil
}
func (f *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

// memDB backs the deck, card and transcript fakes with shared maps.
type memDB struct {
	mu          sync.Mutex
	seq         int64
	decks       map[uuid.UUID]*model.Deck
	cards       map[uuid.UUID]*model.Card
	cardSeq     map[uuid.UUID]int64
	transcripts map[uuid.UUID]*model.Transcript
}

func newMemDB() *memDB {
	return &memDB{
		decks:       map[uuid.UUID]*model.Deck{},
		cards:       map[uuid.UUID]*model.Card{},
		cardSeq:     map[uuid.UUID]int64{},
		transcripts: map[uuid.UUID]*model.Transcript{},
	}
}

type memDecks struct{ *memDB }
type memCards struct{ *memDB }
type memTranscripts struct{ *memDB }

var (
	_ repository.DeckRepository       = memDecks{}
	_ repository.CardRepository       = memCards{}
	_ repository.TranscriptRepository = memTranscripts{}
)

func (m memDecks) Create(_ context.Context, d *model.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	cpy := *d
	cpy.Cards = nil
	m.decks[d.ID] = &cpy
	return nil
}
func (m memDecks) Get(_ context.Context, id uuid.UUID) (*model.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *d
	return &c, nil
}
func (m memDecks) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Deck{}
	for _, d := range m.decks {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (m memDecks) Rename(_ context.Context, id uuid.UUID, name string) (*model.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	d.Name = name
	c := *d
	return &c, nil
}
func (m memDecks) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return errs.ErrNotFound
	}
	for cid, c := range m.cards {
		if c.DeckID == id {
			delete(m.cards, cid)
		}
	}
	delete(m.decks, id)
	return nil
}

func (m memCards) CreateInDeck(_ context.Context, c *model.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[c.DeckID]
	if !ok {
		return errs.ErrNotFound
	}
	if d.OwnerID != c.OwnerID {
		return errs.ErrForbidden
	}
	m.seq++
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cpy := *c
	m.cards[c.ID] = &cpy
	m.cardSeq[c.ID] = m.seq
	return nil
}
func (m memCards) Get(_ context.Context, id uuid.UUID) (*model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}
func (m memCards) list(keep func(*model.Card) bool, desc bool) []model.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Card{}
	for _, c := range m.cards {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := m.cardSeq[out[i].ID], m.cardSeq[out[j].ID]
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}
func (m memCards) ListByOwner(_ context.Context, ownerID uuid.UUID, variant model.Variant) ([]model.Card, error) {
	return m.list(func(c *model.Card) bool {
		return c.OwnerID == ownerID && (variant == "" || c.Variant == variant)
	}, false), nil
}
func (m memCards) ListByDeck(_ context.Context, deckID uuid.UUID) ([]model.Card, error) {
	return m.list(func(c *model.Card) bool { return c.DeckID == deckID }, false), nil
}
func (m memCards) ListByDecks(_ context.Context, deckIDs []uuid.UUID) ([]model.Card, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range deckIDs {
		set[id] = true
	}
	return m.list(func(c *model.Card) bool { return set[c.DeckID] }, true), nil
}
func (m memCards) Update(_ context.Context, c *model.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[c.ID]; !ok {
		return errs.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cpy := *c
	m.cards[c.ID] = &cpy
	return nil
}
func (m memCards) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m memTranscripts) Create(_ context.Context, t *model.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := *t
	m.transcripts[t.ID] = &cpy
	return nil
}
func (m memTranscripts) Get(_ context.Context, id uuid.UUID) (*model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transcripts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}
func (m memTranscripts) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Transcript{}
	for _, t := range m.transcripts {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (m memTranscripts) Update(_ context.Context, t *model.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transcripts[t.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *t
	m.transcripts[t.ID] = &cpy
	return nil
}
func (m memTranscripts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transcripts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.transcripts, id)
	return nil
}
