package output

import (
	"bytes"
	"encoding/xml"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	config.Override("output.format", format)
	color.NoColor = true

	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

var blogs = []api.Blog{
	{ID: "b2", Slug: "second", Title: "Second post", Author: "Ink", Summary: "two", CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	{ID: "b1", Slug: "first", Title: "First post", Author: "Bloom", Summary: "one", CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		isValid bool
	}{
		{"json", true},
		{"text", true},
		{"table", true},
		{"rss", true},
		{"invalid", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.isValid, ValidateOutputFormat(tt.format), tt.format)
	}
}

func TestGetOutputFormatFallsBackToText(t *testing.T) {
	capture(t, "yaml")
	assert.Equal(t, FormatText, GetOutputFormat())
}

func TestPrintBlogsJSON(t *testing.T) {
	buf := capture(t, "json")
	require.NoError(t, PrintBlogs("InkBloom", "https://blog.example.com", blogs))
	assert.Contains(t, buf.String(), `"slug": "second"`)
	assert.True(t, strings.HasPrefix(buf.String(), "["))
}

func TestPrintBlogsTable(t *testing.T) {
	buf := capture(t, "table")
	require.NoError(t, PrintBlogs("InkBloom", "https://blog.example.com", blogs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "Second post")
	assert.Contains(t, lines[2], "First post")
}

func TestPrintBlogsRSS(t *testing.T) {
	buf := capture(t, "rss")
	require.NoError(t, PrintBlogs("InkBloom", "https://blog.example.com", blogs))

	var doc struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Title string `xml:"title"`
				Link  string `xml:"link"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "InkBloom", doc.Channel.Title)
	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "Second post", doc.Channel.Items[0].Title)
	assert.Equal(t, "https://blog.example.com/blog/second", doc.Channel.Items[0].Link)
}

func TestPrintRecordSortsKeys(t *testing.T) {
	buf := capture(t, "text")
	require.NoError(t, PrintRecord("User", map[string]interface{}{"username": "ink", "id": "u1"}))
	assert.Equal(t, "User:\nid: u1\nusername: ink\n", buf.String())
}

func TestPrintList(t *testing.T) {
	buf := capture(t, "text")
	require.NoError(t, PrintList("", nil, []string{"A", "B"}, [][]string{{"1", "2"}}))
	assert.Contains(t, buf.String(), "1  2")
}

func TestMessages(t *testing.T) {
	buf := capture(t, "text")
	PrintSuccess("Saved %s", "it")
	PrintError("failed")
	PrintWarning("careful")
	assert.Equal(t, "Saved it\nError: failed\nWarning: careful\n", buf.String())
}
