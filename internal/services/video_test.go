package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

func TestNormalizeVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare id", input: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short url", input: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed url", input: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVideoID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidVideoID) {
					t.Fatalf("expected ErrInvalidVideoID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("unexpected watch URL %s", got)
	}
}

func TestNormalizeShow(t *testing.T) {
	show := models.Show{
		Headliner: models.Artist{
			VideoID:       "https://youtu.be/dQw4w9WgXcQ",
			SecondVideoID: "nope",
			LiveVideoID:   "9bZkp7q19f0",
		},
		Openers: []models.Artist{{VideoID: "https://www.youtube.com/watch?v=kJQP7kiw5Fk"}},
	}

	normalizeShow(&show)

	if show.Headliner.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected headliner id to be extracted, got %q", show.Headliner.VideoID)
	}
	if show.Headliner.SecondVideoID != "" {
		t.Errorf("expected invalid id to be dropped, got %q", show.Headliner.SecondVideoID)
	}
	if show.Headliner.LiveVideoID != "9bZkp7q19f0" {
		t.Errorf("expected bare id to pass through, got %q", show.Headliner.LiveVideoID)
	}
	if show.Openers[0].VideoID != "kJQP7kiw5Fk" {
		t.Errorf("expected opener id to be extracted, got %q", show.Openers[0].VideoID)
	}
}
