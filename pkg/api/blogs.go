package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	json "github.com/json-iterator/go"
)

// BlogsAfter returns the page of blogs following lastID. An empty lastID
// asks for the first page. A 404 means there is nothing further.
func (c *Client) BlogsAfter(ctx context.Context, lastID string) ([]Blog, error) {
	path := "/api/v1/blogs"
	if lastID != "" {
		path += "/" + url.PathEscape(lastID)
	}
	logger.Debug("Fetching blogs", "after", lastID)

	resp, err := c.read(ctx).Get(path)
	if err := CheckResponse(resp, err); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("blogs after %q: %w", lastID, clierrors.ErrNoMoreData)
		}
		return nil, err
	}

	return decodeList[Blog](resp.Body(), "blogs")
}

// CreateBlog submits a new blog and returns its slug.
func (c *Client) CreateBlog(ctx context.Context, draft BlogDraft) (string, error) {
	if missing := draft.MissingFields(true); len(missing) > 0 {
		return "", clierrors.RequiredFieldsError(missing)
	}
	logger.Debug("Creating blog", "slug", draft.Slug)

	req, _, err := c.mutate(ctx)
	if err != nil {
		return "", err
	}
	req.SetMultipartFormData(draft.formFields()).SetFile("cover", draft.CoverPath)

	env, err := decodeStatus(req.Post("/api/blog"))
	if err != nil {
		return "", err
	}
	return env.BlogSlug, nil
}

// UpdateBlog edits blog id. Without a new cover file the existing cover
// URL is resubmitted.
func (c *Client) UpdateBlog(ctx context.Context, id string, draft BlogDraft) (string, error) {
	if missing := draft.MissingFields(false); len(missing) > 0 {
		return "", clierrors.RequiredFieldsError(missing)
	}
	logger.Debug("Updating blog", "id", id)

	req, _, err := c.mutate(ctx)
	if err != nil {
		return "", err
	}
	req.SetMultipartFormData(draft.formFields())
	if draft.CoverPath != "" {
		req.SetFile("cover", draft.CoverPath)
	}

	env, err := decodeStatus(req.Put("/api/blog/" + url.PathEscape(id)))
	if err != nil {
		return "", err
	}
	return env.Slug, nil
}

// decodeList accepts either a bare JSON array or an object holding the
// array under key.
func decodeList[T any](body []byte, key string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	raw, ok := wrapped[key]
	if !ok {
		return nil, errors.New("decode " + key + ": missing field")
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}
