package domain

import "time"

// Attraction is one point of interest on the local-attractions map.
type Attraction struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"` // nature|food|activity|heritage
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DistanceKM  float64 `json:"distanceKm"`
}

// GalleryImage points at one gallery asset pair (full + thumbnail).
type GalleryImage struct {
	Src   string `json:"src"`
	Thumb string `json:"thumb"`
	Alt   string `json:"alt"`
}

// SiteContent is everything the frontend needs to render one language:
// the string table, text direction, and the localized data sections.
type SiteContent struct {
	Lang        string            `json:"lang"`
	Dir         string            `json:"dir"` // rtl|ltr
	Strings     map[string]string `json:"strings"`
	Attractions []Attraction      `json:"attractions"`
	Gallery     []GalleryImage    `json:"gallery"`
}

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
