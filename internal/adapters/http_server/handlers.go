package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"ella_estate/internal/app"
	"ella_estate/internal/domain"
	"ella_estate/internal/i18n"
)

type Handlers struct {
	Reviews *app.ReviewsService
	Content *app.ContentService
	Contact *app.ContactService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.getReviews)
	s.mux.Delete("/v1/reviews/cache", h.clearReviewsCache)
	s.mux.Get("/v1/content", h.getContent)
	s.mux.Get("/v1/attractions", h.getAttractions)
	s.mux.Post("/v1/contact", h.postContact)
}

func selectLang(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" {
		return i18n.Normalize(q)
	}
	return i18n.Normalize(r.Header.Get("Accept-Language"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// reviewsStatus maps the typed fetch failure onto the status the frontend
// distinguishes: retry-later conditions are 503, upstream faults 502, and
// a bad place id 404.
func reviewsStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrCredentialsNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// etagMatch implements If-None-Match: "*" matches any representation,
// otherwise each comma-separated entity tag is compared. All our tags are
// weak, so plain equality per token is the weak comparison already.
func etagMatch(header, etag string) bool {
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, tok := range strings.Split(header, ",") {
		if strings.TrimSpace(tok) == etag {
			return true
		}
	}
	return false
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatch(inm, etag) {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getReviews(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "1"
	lang := selectLang(r)

	snap, err := h.Reviews.Snapshot(r.Context(), force)
	if err != nil {
		// localized title, machine-usable detail; retry is user-initiated
		writeProblem(w, reviewsStatus(err), i18n.T(lang, domain.ErrorKey(err)), domain.ErrorKey(err))
		return
	}
	writeJSONWithETag(w, r, snap)
}

func (h *Handlers) clearReviewsCache(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.ClearCache(r.Context()); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Cache Clear Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getContent(w http.ResponseWriter, r *http.Request) {
	lang := selectLang(r)
	c, err := h.Content.Content(r.Context(), lang)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Content Unavailable", err.Error())
		return
	}
	w.Header().Set("Content-Language", c.Lang)
	writeJSONWithETag(w, r, c)
}

func (h *Handlers) getAttractions(w http.ResponseWriter, r *http.Request) {
	lang := selectLang(r)
	as, err := h.Content.Attractions(r.Context(), lang)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Content Unavailable", err.Error())
		return
	}
	writeJSONWithETag(w, r, as)
}

type contactResponse struct {
	ID       int64  `json:"id"`
	Message  string `json:"message"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

func (h *Handlers) postContact(w http.ResponseWriter, r *http.Request) {
	lang := selectLang(r)

	var in domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	if in.Lang == "" {
		in.Lang = lang
	}

	saved, err := h.Contact.Submit(r.Context(), in)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			writeProblem(w, http.StatusBadRequest, i18n.T(lang, verr.Key), verr.Key)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Submission Failed", "could not store message")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(contactResponse{
		ID:       saved.ID,
		Message:  i18n.T(lang, "contact.sent"),
		WhatsApp: h.Contact.WhatsAppLink(saved.Message),
	})
}
