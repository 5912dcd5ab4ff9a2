package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/formatter"
	"github.com/fatih/color"
	"github.com/gorilla/feeds"
	json "github.com/json-iterator/go"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
	FormatRSS   OutputFormat = "rss"
)

// Out is where everything is printed
var Out io.Writer = color.Output

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch format := OutputFormat(config.GetString("output.format")); format {
	case FormatJSON, FormatTable, FormatRSS:
		return format
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	switch OutputFormat(format) {
	case FormatJSON, FormatTable, FormatText, FormatRSS:
		return true
	}
	return false
}

// Print outputs data in the configured format with optional title
func Print(title string, data interface{}) error {
	if GetOutputFormat() == FormatJSON {
		return printJSON(data)
	}
	if title != "" {
		fmt.Fprintf(Out, "%s:\n", title)
	}
	return printJSON(data)
}

// PrintList outputs rows in the configured format. JSON output prints
// items; table and text print rows under columns.
func PrintList(title string, items interface{}, columns []string, rows [][]string) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(items)
	default:
		if title != "" {
			formatter.Bold.Fprintln(Out, title)
		}
		printTable(columns, rows)
		return nil
	}
}

// PrintRecord outputs a single record with keys sorted
func PrintRecord(title string, record map[string]interface{}) error {
	if GetOutputFormat() == FormatJSON {
		return printJSON(record)
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if GetOutputFormat() == FormatTable {
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprintf("%v", record[k])})
		}
		printTable([]string{"Field", "Value"}, rows)
		return nil
	}

	if title != "" {
		fmt.Fprintf(Out, "%s:\n", title)
	}
	for _, k := range keys {
		formatter.Bold.Fprint(Out, k+": ")
		fmt.Fprintf(Out, "%v\n", record[k])
	}
	return nil
}

// PrintBlogs prints a page of the feed. baseURL is used for rss links.
func PrintBlogs(title, baseURL string, blogs []api.Blog) error {
	now := time.Now()
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(blogs)
	case FormatRSS:
		return WriteRSS(Out, title, baseURL, blogs, now)
	case FormatTable:
		rows := make([][]string, len(blogs))
		for i, b := range blogs {
			rows[i] = formatter.BlogRow(b, now)
		}
		printTable(formatter.BlogColumns, rows)
		return nil
	default:
		for _, b := range blogs {
			fmt.Fprintln(Out, formatter.BlogLine(b, now))
		}
		return nil
	}
}

// WriteRSS renders blogs as an RSS 2.0 document
func WriteRSS(w io.Writer, title, baseURL string, blogs []api.Blog, now time.Time) error {
	feed := &feeds.Feed{
		Title:       title,
		Description: "Latest posts on InkBloom",
		Link:        &feeds.Link{Href: baseURL, Rel: "self", Type: "text/html"},
		Created:     now,
		Updated:     now,
	}

	for _, b := range blogs {
		link := baseURL + api.BlogPath(b.Slug)
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       b.Title,
			Link:        &feeds.Link{Href: link, Rel: "alternate", Type: "text/html"},
			Id:          link,
			Author:      &feeds.Author{Name: b.Author},
			Description: b.Summary,
			Created:     b.CreatedAt,
		})
	}

	return feed.WriteRss(w)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	formatter.Success.Fprintf(Out, msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	formatter.Error.Fprintf(Out, "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	formatter.Info.Fprintf(Out, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	formatter.Warning.Fprintf(Out, "Warning: "+msg+"\n", args...)
}

func printJSON(data interface{}) error {
	out, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, out)
	return err
}

func printTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)

	for i, h := range headers {
		formatter.Bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i < len(row)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// FormatAsJSON converts data to JSON string
func FormatAsJSON(data interface{}) (string, error) {
	return json.ConfigCompatibleWithStandardLibrary.MarshalToString(data)
}

// FormatAsPrettyJSON converts data to pretty JSON string
func FormatAsPrettyJSON(data interface{}) (string, error) {
	out, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
