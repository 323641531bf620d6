package services

import (
	"fmt"

	"github.com/kkdai/youtube/v2"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

const watchBaseURL = "https://www.youtube.com/watch?v="

// NormalizeVideoID accepts a bare video id or any YouTube watch, share or embed URL and
// returns the bare id.
func NormalizeVideoID(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", shared.ErrInvalidVideoID)
	}

	id, err := youtube.ExtractVideoID(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", shared.ErrInvalidVideoID, raw, err)
	}
	return id, nil
}

// WatchURL returns the public watch page for a video id.
func WatchURL(id string) string {
	return watchBaseURL + id
}

// normalizeArtist rewrites every video field of a to a bare id, dropping values that are not
// recognizable YouTube ids so the player never receives garbage.
func normalizeArtist(a *models.Artist) {
	for _, field := range []*string{&a.VideoID, &a.SecondVideoID, &a.LiveVideoID, &a.InterviewVideoID} {
		if *field == "" {
			continue
		}
		id, err := NormalizeVideoID(*field)
		if err != nil {
			*field = ""
			continue
		}
		*field = id
	}
}

func normalizeShow(s *models.Show) {
	normalizeArtist(&s.Headliner)
	for i := range s.Openers {
		normalizeArtist(&s.Openers[i])
	}
}
