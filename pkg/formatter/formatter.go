// Package formatter turns domain values into display strings.
package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/fatih/color"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Faint   = color.New(color.Faint)
)

// BlogColumns are the table headers for BlogRow
var BlogColumns = []string{"ID", "Title", "Author", "Views", "Published"}

// BlogRow renders a blog as a table row
func BlogRow(b api.Blog, now time.Time) []string {
	return []string{
		b.ID,
		Truncate(b.Title, 48),
		b.Author,
		strconv.Itoa(b.Views),
		RelativeTime(b.CreatedAt, now),
	}
}

// BlogLine renders a blog for text output
func BlogLine(b api.Blog, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(Bold.Sprint(b.Title))
	if b.Author != "" {
		sb.WriteString(" by " + b.Author)
	}
	meta := []string{RelativeTime(b.CreatedAt, now), fmt.Sprintf("%d views", b.Views)}
	if b.ReadTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", b.ReadTime))
	}
	sb.WriteString("\n  " + Faint.Sprint(strings.Join(meta, " · ")))
	if len(b.Tags) > 0 {
		sb.WriteString("\n  " + Info.Sprint("#"+strings.Join(b.Tags, " #")))
	}
	return sb.String()
}

// Truncate shortens s to at most n runes, marking the cut with "..."
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n || n < 4 {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// RelativeTime renders t relative to now, e.g. "3h ago"
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
