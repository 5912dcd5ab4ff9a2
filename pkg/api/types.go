package api

import (
	"strings"
	"time"
)

// User is the signed-in account as returned by the session probe
type User struct {
	ID        string `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Blog is one item of the paginated feed
type Blog struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Author     string    `json:"author,omitempty"`
	Category   string    `json:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CoverImage string    `json:"cover_image,omitempty"`
	Views      int       `json:"views"`
	ReadTime   int       `json:"read_time,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchResult is a single search hit
type SearchResult struct {
	ID    string `json:"blog_id,omitempty"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Comment on a blog
type Comment struct {
	ID        string    `json:"comment_id"`
	BlogID    string    `json:"blog_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewStats is the server's answer to a view report
type ViewStats struct {
	Status string `json:"status"`
	Views  int    `json:"views"`
}

// StatusResponse is the envelope used by mutating endpoints
type StatusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Slug     string `json:"slug,omitempty"`
	BlogSlug string `json:"blog_slug,omitempty"`
}

// OK reports whether the envelope signals success
func (r StatusResponse) OK() bool {
	return r.Status == "" || r.Status == "success"
}

// BlogPage is what can be read off a rendered blog page
type BlogPage struct {
	Slug      string
	Title     string
	Summary   string
	CSRFToken string
}

// BlogDraft is the form submitted to create or edit a blog
type BlogDraft struct {
	Title       string
	Description string
	Slug        string
	Tags        []string
	Category    string
	Visibility  string
	Featured    bool
	Content     string
	// CoverPath is a local file to upload; CoverURL keeps an existing cover
	CoverPath string
	CoverURL  string
}

// MissingFields lists required fields that are empty. A cover is only
// required when requireCover is set (creation).
func (d BlogDraft) MissingFields(requireCover bool) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("Title", d.Title)
	check("Description", d.Description)
	check("Slug", d.Slug)
	check("Tags", strings.Join(d.Tags, ""))
	check("Category", d.Category)
	check("Visibility", d.Visibility)
	if requireCover {
		check("Cover", d.CoverPath)
	} else {
		check("Cover", d.CoverPath+d.CoverURL)
	}
	check("Content", d.Content)
	return missing
}

// formFields renders the draft as multipart form values
func (d BlogDraft) formFields() map[string]string {
	fields := map[string]string{
		"title":       d.Title,
		"description": d.Description,
		"slug":        strings.ToLower(d.Slug),
		"tags":        strings.Join(d.Tags, ","),
		"category":    strings.ToLower(d.Category),
		"visibility":  strings.ToLower(d.Visibility),
		"featured":    "false",
		"content":     d.Content,
	}
	if d.Featured {
		fields["featured"] = "true"
	}
	if d.CoverPath == "" && d.CoverURL != "" {
		fields["cover"] = d.CoverURL
	}
	return fields
}
