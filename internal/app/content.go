package app

import (
	"context"
	"fmt"
	"time"

	"ella_estate/internal/domain"
	"ella_estate/internal/i18n"
)

// ContentService assembles the localized payload the frontend renders:
// string table, text direction, attractions, gallery manifest. One
// canonical content set; language differences are data, not code paths.
type ContentService struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewContentService(cache domain.Cache, ttl time.Duration) *ContentService {
	return &ContentService{cache: cache, ttl: ttl}
}

func (s *ContentService) Content(ctx context.Context, lang string) (domain.SiteContent, error) {
	lang = i18n.Normalize(lang)
	key := fmt.Sprintf("content:%s", lang)
	var out domain.SiteContent
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out = domain.SiteContent{
		Lang:        lang,
		Dir:         i18n.Dir(lang),
		Strings:     i18n.Table(lang),
		Attractions: localizedAttractions(lang),
		Gallery:     localizedGallery(lang),
	}
	_ = s.cache.Set(ctx, key, out, int(s.ttl.Seconds()))
	return out, nil
}

func (s *ContentService) Attractions(ctx context.Context, lang string) ([]domain.Attraction, error) {
	c, err := s.Content(ctx, lang)
	if err != nil {
		return nil, err
	}
	return c.Attractions, nil
}

func localizedAttractions(lang string) []domain.Attraction {
	out := make([]domain.Attraction, 0, len(attractionsData))
	for _, a := range attractionsData {
		out = append(out, domain.Attraction{
			ID:          a.id,
			Category:    a.category,
			Name:        a.name[lang],
			Description: a.desc[lang],
			Lat:         a.lat,
			Lon:         a.lon,
			DistanceKM:  a.km,
		})
	}
	return out
}

func localizedGallery(lang string) []domain.GalleryImage {
	out := make([]domain.GalleryImage, 0, len(galleryData))
	for _, g := range galleryData {
		out = append(out, domain.GalleryImage{Src: g.src, Thumb: g.thumb, Alt: g.alt[lang]})
	}
	return out
}
