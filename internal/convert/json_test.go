package convert

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	u "github.com/gofrs/uuid/v5"

	model "github.com/and161185/studyhub/internal/model"
)

func mustUUID(t *testing.T, s string) u.UUID {
	t.Helper()
	id, err := u.FromString(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}

func TestToAccount_UserAndAdmin(t *testing.T) {
	t.Parallel()
	id := mustUUID(t, "11111111-1111-1111-1111-111111111111")

	user := ToAccount(model.Account{
		ID: id, Email: "a@b.c", Username: "alice", Role: model.RoleUser,
		User: &model.UserProfile{FirstName: "Alice", LastName: "Smith"},
	}, model.Tokens{AccessToken: "tok"})
	if user.ID != id.String() || user.FirstName != "Alice" || user.Token != "tok" || user.Permissions != nil {
		t.Fatalf("user mismatch: %+v", user)
	}

	admin := ToAccount(model.Account{
		ID: id, Role: model.RoleAdmin, Admin: &model.AdminProfile{Permissions: []string{"all"}},
	}, model.Tokens{})
	b, _ := json.Marshal(admin)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["firstName"]; ok {
		t.Fatalf("admin must not carry firstName: %s", b)
	}
	if _, ok := m["token"]; ok {
		t.Fatalf("empty token must be omitted: %s", b)
	}
	if m["role"] != "ADMIN" || m["_id"] != id.String() {
		t.Fatalf("admin wire mismatch: %s", b)
	}
}

func TestToCard_VariantFields(t *testing.T) {
	t.Parallel()
	deck := mustUUID(t, "22222222-2222-2222-2222-222222222222")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	fc := ToCard(model.Card{
		DeckID: deck, Variant: model.VariantFlashcard, CreatedAt: now,
		Flashcard: &model.Flashcard{Term: "ATP", Definition: "energy"},
	})
	b, _ := json.Marshal(fc)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["type"] != "Flashcard" || m["term"] != "ATP" || m["deck"] != deck.String() {
		t.Fatalf("flashcard wire mismatch: %s", b)
	}
	if _, ok := m["question"]; ok {
		t.Fatalf("multicard fields must be omitted: %s", b)
	}
	if m["createdAt"] != "2024-01-02T03:04:05Z" {
		t.Fatalf("createdAt mismatch: %v", m["createdAt"])
	}

	mc := ToCard(model.Card{
		Variant:   model.VariantMulticard,
		Multicard: &model.Multicard{Question: "q", ChoiceNumber: 2, Choices: []string{"a", "b"}},
	})
	if mc.Question != "q" || mc.ChoiceNumber != 2 || len(mc.Choices) != 2 || mc.Term != "" {
		t.Fatalf("multicard mismatch: %+v", mc)
	}
}

func TestToDeckList_EmptyCardsIsArray(t *testing.T) {
	t.Parallel()
	list := ToDeckList([]model.Deck{{Name: "Bio"}})
	b, _ := json.Marshal(list)
	want := `"cards":[]`
	if list.Count != 1 || !strings.Contains(string(b), want) {
		t.Fatalf("want %s in %s", want, b)
	}

	empty, _ := json.Marshal(ToDeckList(nil))
	if !strings.Contains(string(empty), `"data":[]`) {
		t.Fatalf("empty list must render data as array: %s", empty)
	}
}

func TestToTranscripts(t *testing.T) {
	t.Parallel()
	owner := mustUUID(t, "33333333-3333-3333-3333-333333333333")
	out := ToTranscripts([]model.Transcript{{OwnerID: owner, Title: "L1", Content: "c"}})
	if len(out) != 1 || out[0].User != owner.String() || out[0].Title != "L1" {
		t.Fatalf("mismatch: %+v", out)
	}
	if ToTranscripts(nil) == nil {
		t.Fatalf("nil input must give empty slice")
	}
}

func TestParseDeckRef(t *testing.T) {
	t.Parallel()
	if id, err := ParseDeckRef(""); err != nil || id != u.Nil {
		t.Fatalf("empty must give Nil: %v %v", id, err)
	}
	if _, err := ParseDeckRef("nope"); err == nil {
		t.Fatalf("want parse error")
	}
	want := mustUUID(t, "44444444-4444-4444-4444-444444444444")
	if id, err := ParseDeckRef(want.String()); err != nil || id != want {
		t.Fatalf("got %v %v", id, err)
	}
}

