package api

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/PuerkitoBio/goquery"
)

// FetchCSRFToken loads an HTML page and reads the anti-forgery token
// from the hidden csrf_token input or the csrf-token meta tag.
func (c *Client) FetchCSRFToken(ctx context.Context, page string) (string, error) {
	doc, err := c.fetchDocument(ctx, page)
	if err != nil {
		return "", err
	}

	token := csrfFromDocument(doc)
	if token == "" {
		return "", fmt.Errorf("no anti-forgery token on %s", page)
	}
	logger.Debug("Scraped anti-forgery token", "page", page)
	return token, nil
}

// GetBlogPage fetches the rendered page for slug.
func (c *Client) GetBlogPage(ctx context.Context, slug string) (*BlogPage, error) {
	doc, err := c.fetchDocument(ctx, BlogPath(slug))
	if err != nil {
		return nil, err
	}

	page := &BlogPage{
		Slug:      slug,
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		CSRFToken: csrfFromDocument(doc),
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		page.Title = h1
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		page.Summary = strings.TrimSpace(desc)
	}
	if page.CSRFToken != "" {
		c.SetCSRFToken(page.CSRFToken)
	}
	return page, nil
}

// BlogPath is the canonical page path for a blog
func BlogPath(slug string) string {
	return "/blog/" + url.PathEscape(slug)
}

func (c *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	resp, err := c.read(ctx).
		SetHeader("Accept", "text/html").
		Get(path)
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func csrfFromDocument(doc *goquery.Document) string {
	if v, ok := doc.Find("#csrf_token").Attr("value"); ok && v != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[name="csrf-token"]`).Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
