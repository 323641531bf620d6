package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
)

// LineupOrder is how a festival lineup is sorted.
type LineupOrder int

const (
	ByTime LineupOrder = iota
	ByStage
)

func (o LineupOrder) String() string {
	if o == ByStage {
		return "stage"
	}
	return "time"
}

var setTimeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// SortLineup returns a sorted copy of sets. ByTime orders by day and start time, then stage,
// then artist; ByStage orders by stage, then day and start time, then artist. Sets without a
// parseable start time sort after timed sets. Name comparisons ignore case.
func SortLineup(sets []models.FestivalSet, order LineupOrder) []models.FestivalSet {
	out := slices.Clone(sets)
	slices.SortStableFunc(out, func(a, b models.FestivalSet) int {
		byTime := compareStart(a, b)
		byStage := strings.Compare(strings.ToLower(a.Stage), strings.ToLower(b.Stage))
		byArtist := strings.Compare(strings.ToLower(a.Artist.Name), strings.ToLower(b.Artist.Name))

		if order == ByStage {
			return cmpChain(byStage, byTime, byArtist)
		}
		return cmpChain(byTime, byStage, byArtist)
	})
	return out
}

func cmpChain(results ...int) int {
	for _, r := range results {
		if r != 0 {
			return r
		}
	}
	return 0
}

func compareStart(a, b models.FestivalSet) int {
	at, aok := setStart(a)
	bt, bok := setStart(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return at.Compare(bt)
}

// setStart combines the set's day, when it is a calendar date, with its start time.
func setStart(s models.FestivalSet) (time.Time, bool) {
	clock := strings.TrimSpace(s.StartTime)
	if clock == "" {
		return time.Time{}, false
	}

	var tod time.Time
	parsed := false
	for _, layout := range setTimeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(clock)); err == nil {
			tod, parsed = t, true
			break
		}
	}
	if !parsed {
		return time.Time{}, false
	}

	day, err := time.Parse(models.DateLayout, s.Day)
	if err != nil {
		day = time.Time{}
	}
	return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute), true
}
