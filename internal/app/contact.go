package app

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ella_estate/internal/domain"
	"ella_estate/internal/i18n"
)

// ValidationError carries the i18n key of the field message the UI shows.
type ValidationError struct{ Key string }

func (e *ValidationError) Error() string { return "contact: " + e.Key }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactService validates and persists contact-form submissions.
type ContactService struct {
	repo    domain.EstateRepository
	waPhone string
	now     func() time.Time
}

func NewContactService(repo domain.EstateRepository, whatsAppPhone string) *ContactService {
	return &ContactService{repo: repo, waPhone: whatsAppPhone, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Message = strings.TrimSpace(m.Message)
	m.Lang = i18n.Normalize(m.Lang)
	if m.Email != nil {
		e := strings.TrimSpace(*m.Email)
		if e == "" {
			m.Email = nil
		} else {
			m.Email = &e
		}
	}
	if m.Phone != nil {
		p := normalizePhone(*m.Phone)
		if p == "" {
			m.Phone = nil
		} else {
			m.Phone = &p
		}
	}

	switch {
	case m.Name == "":
		return m, &ValidationError{Key: "contact.error.name"}
	case m.Message == "":
		return m, &ValidationError{Key: "contact.error.message"}
	case m.Email != nil && !emailRe.MatchString(*m.Email):
		return m, &ValidationError{Key: "contact.error.email"}
	case m.Email == nil && m.Phone == nil:
		return m, &ValidationError{Key: "contact.error.reachable"}
	}

	m.CreatedAt = s.now()
	id, err := s.repo.InsertMessage(ctx, m)
	if err != nil {
		return m, err
	}
	m.ID = id
	return m, nil
}

// WhatsAppLink builds the wa.me deep link the contact section renders.
// Empty when no WhatsApp number is configured.
func (s *ContactService) WhatsAppLink(text string) string {
	digits := normalizePhone(s.waPhone)
	if digits == "" {
		return ""
	}
	u := "https://wa.me/" + strings.TrimPrefix(digits, "+")
	if text != "" {
		u += "?text=" + url.QueryEscape(text)
	}
	return u
}

// normalizePhone keeps digits and a leading plus; anything under 7 digits
// is treated as absent.
func normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	p := b.String()
	if len(strings.TrimPrefix(p, "+")) < 7 {
		return ""
	}
	return p
}
