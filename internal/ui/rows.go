package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/player"
)

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Upcoming shows"))
	b.WriteString("\n")
	if summary := m.filterSummary(); summary != "" {
		b.WriteString(styles.help.Render(summary))
		b.WriteString("\n\n")
	}

	st := m.list.State()
	switch {
	case st.Status == listing.Loading:
		fmt.Fprintf(&b, "%s Loading shows...\n", m.spinner.View())
	case st.Status == listing.Error:
		b.WriteString(styles.err.Render(st.Message))
		b.WriteString("\n\nPress r to retry or c to clear filters and start over.\n")
	case st.Empty():
		b.WriteString("No shows match these filters.\n")
		b.WriteString(styles.help.Render("Press c to clear filters."))
		b.WriteString("\n")
	default:
		m.renderRows(&b, st.Page)
	}

	if np := m.renderNowPlaying(); np != "" {
		b.WriteString("\n")
		b.WriteString(np)
		b.WriteString("\n")
	}
	if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.warn.Render(m.status))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.play, m.keys.nextPage, m.keys.search, m.keys.venue, m.keys.clear, m.keys.quit}
	fmt.Fprintf(&b, "\n%s", m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderRows(b *strings.Builder, page *models.ShowsPage) {
	end := min(len(page.Shows), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		show := page.Shows[i]
		row := showRow(show)
		if i == m.cursor {
			b.WriteString(styles.selected.Render("› " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")

		if m.expansion.IsExpanded(show.ID) {
			b.WriteString(styles.detail.Render(showDetail(show, m.player.Current())))
			b.WriteString("\n")
		}
	}

	if pages := listing.Pages(page.TotalCount, listing.PageSize); pages != nil {
		b.WriteString("\n")
		b.WriteString(renderPages(pages, m.nav.Page()))
		b.WriteString("\n")
	}
}

func (m *Model) renderFocus() string {
	show, ok := m.expansion.Selected()
	if !ok {
		return m.renderList()
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(show.Headliner.Name))
	b.WriteString("\n")
	b.WriteString(showDetail(show, m.player.Current()))
	b.WriteString("\n")
	if np := m.renderNowPlaying(); np != "" {
		fmt.Fprintf(&b, "\n%s\n", np)
	}
	if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.warn.Render(m.status))
	}

	helpKeys := []key.Binding{m.keys.play, m.keys.stop, m.keys.variant, m.keys.watch, m.keys.tickets, m.keys.back}
	fmt.Fprintf(&b, "\n%s", m.help.ShortHelpView(helpKeys))
	return b.String()
}

// renderNowPlaying is empty while the slot is clear, including between the two steps of a
// video switch.
func (m *Model) renderNowPlaying() string {
	cur := m.player.Current()
	if !cur.Active() {
		return ""
	}

	meta := cur.Metadata
	lines := []string{
		styles.ok.Render("▶ " + meta.ArtistName),
		fmt.Sprintf("%s · %s", meta.VenueName, meta.ShowDate),
		fmt.Sprintf("%s video %s", cur.Role(), cur.VideoID),
	}
	if len(meta.Variants) > 1 {
		roles := make([]string, len(meta.Variants))
		for i, v := range meta.Variants {
			roles[i] = string(v.Role)
			if v.VideoID == cur.VideoID {
				roles[i] = "[" + roles[i] + "]"
			}
		}
		lines = append(lines, strings.Join(roles, " "))
	}
	return styles.panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) filterSummary() string {
	f := m.nav.Filters()
	var parts []string
	if f.ArtistSearch != "" {
		parts = append(parts, fmt.Sprintf("artist %q", f.ArtistSearch))
	}
	if f.StartDate != "" || f.EndDate != "" {
		parts = append(parts, fmt.Sprintf("dates %s..%s", f.StartDate, f.EndDate))
	}
	if f.VenueID != "" {
		parts = append(parts, "venue "+m.venueName(f.VenueID))
	}
	if f.GenreID != "" {
		parts = append(parts, "genre "+m.genreName(f.GenreID))
	}
	if f.SortBy != "" {
		parts = append(parts, "sorted by "+f.SortBy)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) venueName(id string) string {
	for _, v := range m.venues {
		if v.ID == id {
			return v.Name
		}
	}
	return id
}

func (m *Model) genreName(id string) string {
	for _, g := range m.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return id
}

func showRow(show models.Show) string {
	row := fmt.Sprintf("%-11s %s @ %s", show.DisplayDate(), show.Headliner.Name, show.Venue.Name)
	if show.IsFeatured {
		row += " ★"
	}
	if show.IsHometown {
		row += " (local)"
	}
	return row
}

// showDetail lists the lineup with the key that plays each artist.
func showDetail(show models.Show, cur player.NowPlaying) string {
	var lines []string
	when := show.DisplayDate()
	if show.Time != "" {
		when += " " + show.Time
	}
	lines = append(lines, fmt.Sprintf("%s · %s (%s)", when, show.Venue.Name, show.Venue.Location()))

	for i, a := range lineup(show) {
		role := "headliner"
		if i > 0 {
			role = "opener"
		}
		line := fmt.Sprintf("%d. %s (%s)", i+1, a.Name, role)
		switch {
		case cur.Active() && cur.Metadata.ShowID == show.ID && cur.Metadata.ArtistID == a.ID:
			line += " ▶"
		case !a.HasVideo():
			line += " no video"
		}
		lines = append(lines, line)
	}

	if show.Headliner.Bio != "" {
		lines = append(lines, show.Headliner.Bio)
	}
	if price := show.Price(); price != "" {
		lines = append(lines, "Tickets from "+price)
	}
	return strings.Join(lines, "\n")
}

func renderPages(pages []int, current int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		n := strconv.Itoa(p)
		if p == current {
			n = styles.selected.Render("[" + n + "]")
		}
		parts[i] = n
	}
	return fmt.Sprintf("Page %d of %d  %s", current, len(pages), strings.Join(parts, " "))
}
