// package formatter renders show listings and festival lineups as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "markdown", "txt"}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "markdown":
		return "md"
	case "txt":
		return "txt"
	default:
		return "json"
	}
}

// ValidFormat reports whether format is one of [Formats].
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

func openerNames(show models.Show) string {
	names := make([]string, len(show.Openers))
	for i, o := range show.Openers {
		names[i] = o.Name
	}
	return strings.Join(names, ", ")
}

// ExportToCSV converts a ShowExport to CSV with one row per show.
func ExportToCSV(export *models.ShowExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Time", "Headliner", "Openers", "Venue", "City", "State", "Price", "Tickets", "Hometown", "Featured"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, show := range export.Shows {
		record := []string{
			show.ID,
			show.Date,
			show.Time,
			show.Headliner.Name,
			openerNames(show),
			show.Venue.Name,
			show.Venue.City,
			show.Venue.State,
			show.Price(),
			show.TicketURL,
			strconv.FormatBool(show.IsHometown),
			strconv.FormatBool(show.IsFeatured),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func filterSummary(filters map[string]string) string {
	if len(filters) == 0 {
		return "none"
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, filters[k])
	}
	return strings.Join(parts, ", ")
}

// ExportToMarkdown converts a ShowExport to Markdown, grouped under one heading per date.
func ExportToMarkdown(export *models.ShowExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Shows\n\n")
	buf.WriteString(fmt.Sprintf("**Filters**: %s\n", filterSummary(export.Filters)))
	buf.WriteString(fmt.Sprintf("**Shows**: %d of %d\n", len(export.Shows), export.TotalCount))
	if !export.ExportedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Exported**: %s\n", export.ExportedAt.Format(time.RFC1123)))
	}

	current := ""
	for _, show := range export.Shows {
		if show.Date != current {
			current = show.Date
			buf.WriteString(fmt.Sprintf("\n## %s\n\n", show.DisplayDate()))
		}

		line := fmt.Sprintf("- **%s**", show.Headliner.Name)
		if openers := openerNames(show); openers != "" {
			line += fmt.Sprintf(" with %s", openers)
		}
		line += fmt.Sprintf(" at %s (%s)", show.Venue.Name, show.Venue.Location())
		if show.Time != "" {
			line += " " + show.Time
		}
		if price := show.Price(); price != "" {
			line += " " + price
		}
		if show.TicketURL != "" {
			line += fmt.Sprintf(" [tickets](%s)", show.TicketURL)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ShowExport to plain text, one show per line.
func ExportToText(export *models.ShowExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Filters: %s\n", filterSummary(export.Filters)))
	buf.WriteString(fmt.Sprintf("Shows: %d of %d\n\n", len(export.Shows), export.TotalCount))

	for i, show := range export.Shows {
		buf.WriteString(fmt.Sprintf("%d. %s  %s @ %s\n", i+1, show.DisplayDate(), show.Headliner.Name, show.Venue.Name))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a ShowExport to indented JSON.
func ExportToJSON(export *models.ShowExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// Render converts export to the given format. Unknown formats render as JSON.
func Render(export *models.ShowExport, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(export)
	case "markdown":
		return ExportToMarkdown(export)
	case "txt":
		return ExportToText(export)
	default:
		return ExportToJSON(export)
	}
}

// WriteExport renders export and writes it to path.
//
// Defaults to shows_{epoch}.{ext} in the working directory when path is empty. Parent
// directories are created.
func WriteExport(export *models.ShowExport, format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("shows_%d.%s", time.Now().Unix(), Extension(format))
	}

	data, err := Render(export, format)
	if err != nil {
		return "", fmt.Errorf("failed to render %s export: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteExportManifest writes the manifest next to an export as JSON.
func WriteExportManifest(manifest *models.ExportManifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LineupToText renders a festival lineup in the given set order.
func LineupToText(festival *models.Festival, sets []models.FestivalSet) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s %d\n", festival.Name, festival.Year))
	if festival.Location != "" {
		buf.WriteString(festival.Location + "\n")
	}
	if festival.StartDate != "" {
		buf.WriteString(fmt.Sprintf("%s to %s\n", festival.StartDate, festival.EndDate))
	}
	buf.WriteString("\n")

	for _, set := range sets {
		when := set.StartTime
		if when == "" {
			when = "TBA"
		}
		if set.EndTime != "" {
			when += "-" + set.EndTime
		}
		if set.Day != "" {
			when = set.Day + " " + when
		}
		buf.WriteString(fmt.Sprintf("%-22s %-18s %s\n", when, set.Stage, set.Artist.Name))
	}

	return buf.Bytes()
}
