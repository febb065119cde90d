package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ella_estate/internal/app"
	"ella_estate/internal/domain"
)

type fakeRepo struct {
	saved []domain.ContactMessage
}

func (f *fakeRepo) InsertMessage(ctx context.Context, m domain.ContactMessage) (int64, error) {
	f.saved = append(f.saved, m)
	return int64(len(f.saved)), nil
}

func (f *fakeRepo) ListMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	return f.saved, nil
}

func (f *fakeRepo) ArchiveSnapshot(ctx context.Context, placeID string, s domain.ReviewsSnapshot) error {
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestSubmit_ValidMessagePersisted(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewContactService(repo, "+972-50-1234567")

	out, err := svc.Submit(context.Background(), domain.ContactMessage{
		Name:    "  דני כהן ",
		Phone:   ptr("050-765 4321"),
		Message: "מתי פנוי סופ\"ש הקרוב?",
		Lang:    "he-IL",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.ID != 1 || len(repo.saved) != 1 {
		t.Fatalf("message not persisted: %+v", out)
	}
	if out.Name != "דני כהן" {
		t.Fatalf("name not trimmed: %q", out.Name)
	}
	if out.Phone == nil || *out.Phone != "0507654321" {
		t.Fatalf("phone not normalized: %v", out.Phone)
	}
	if out.Lang != "he" {
		t.Fatalf("lang not normalized: %q", out.Lang)
	}
	if out.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	svc := app.NewContactService(&fakeRepo{}, "")

	cases := []struct {
		name string
		in   domain.ContactMessage
		key  string
	}{
		{"missing name", domain.ContactMessage{Message: "hi", Email: ptr("a@b.co")}, "contact.error.name"},
		{"missing message", domain.ContactMessage{Name: "A", Email: ptr("a@b.co")}, "contact.error.message"},
		{"bad email", domain.ContactMessage{Name: "A", Message: "hi", Email: ptr("not-an-email")}, "contact.error.email"},
		{"unreachable", domain.ContactMessage{Name: "A", Message: "hi"}, "contact.error.reachable"},
		{"phone too short", domain.ContactMessage{Name: "A", Message: "hi", Phone: ptr("123")}, "contact.error.reachable"},
	}
	for _, c := range cases {
		_, err := svc.Submit(context.Background(), c.in)
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", c.name, err)
		}
		if verr.Key != c.key {
			t.Fatalf("%s: key = %q, want %q", c.name, verr.Key, c.key)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	svc := app.NewContactService(&fakeRepo{}, "+972 50-123-4567")

	link := svc.WhatsAppLink("שלום")
	if !strings.HasPrefix(link, "https://wa.me/972501234567?text=") {
		t.Fatalf("link = %q", link)
	}

	none := app.NewContactService(&fakeRepo{}, "")
	if none.WhatsAppLink("hi") != "" {
		t.Fatalf("expected empty link without configured number")
	}
}
