package player

import (
	"slices"

	"github.com/desertthunder/showfinder/internal/models"
)

// Role tags one of an artist's known videos.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleLive      Role = "live"
	RoleInterview Role = "interview"
)

// Variant is one role-tagged video of the now-playing artist.
type Variant struct {
	Role    Role
	VideoID string
}

// Metadata describes what is playing.
type Metadata struct {
	ArtistName string
	ArtistID   string
	VenueName  string
	ShowID     string
	ShowDate   string
	TicketURL  string
	Variants   []Variant
}

func (m Metadata) clone() Metadata {
	m.Variants = slices.Clone(m.Variants)
	return m
}

// Has reports whether id is one of the variants.
func (m Metadata) Has(id string) bool {
	return slices.ContainsFunc(m.Variants, func(v Variant) bool { return v.VideoID == id })
}

// RoleOf returns the role of id, or "" when id is not a variant.
func (m Metadata) RoleOf(id string) Role {
	for _, v := range m.Variants {
		if v.VideoID == id {
			return v.Role
		}
	}
	return ""
}

// After returns the variant following id, wrapping around. ok is false with fewer than two
// variants.
func (m Metadata) After(id string) (Variant, bool) {
	if len(m.Variants) < 2 {
		return Variant{}, false
	}
	i := slices.IndexFunc(m.Variants, func(v Variant) bool { return v.VideoID == id })
	return m.Variants[(i+1)%len(m.Variants)], true
}

// MetadataFor describes artist at show. Variants are listed primary first and skip missing ids.
// It returns nil when the artist has no video at all.
func MetadataFor(show models.Show, artist models.Artist) *Metadata {
	candidates := []Variant{
		{RolePrimary, artist.VideoID},
		{RoleSecondary, artist.SecondVideoID},
		{RoleLive, artist.LiveVideoID},
		{RoleInterview, artist.InterviewVideoID},
	}

	var variants []Variant
	for _, v := range candidates {
		if v.VideoID != "" && !slices.ContainsFunc(variants, func(have Variant) bool { return have.VideoID == v.VideoID }) {
			variants = append(variants, v)
		}
	}
	if len(variants) == 0 {
		return nil
	}

	return &Metadata{
		ArtistName: artist.Name,
		ArtistID:   artist.ID,
		VenueName:  show.Venue.Name,
		ShowID:     show.ID,
		ShowDate:   show.Date,
		TicketURL:  show.TicketURL,
		Variants:   variants,
	}
}
