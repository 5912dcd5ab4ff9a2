package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Om-Mishra7/InkBloom/pkg/client"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csrfPage = `<html><head><title>InkBloom</title></head>
<body><form><input type="hidden" id="csrf_token" value="tok-123"></form></body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(client.New(client.Options{BaseURL: srv.URL}), "/")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fakeBlogs(n int) []Blog {
	blogs := make([]Blog, n)
	for i := range blogs {
		blogs[i] = Blog{
			ID:     gofakeit.UUID(),
			Slug:   strings.ToLower(gofakeit.Word()),
			Title:  gofakeit.Word() + " " + gofakeit.Word(),
			Author: gofakeit.Name(),
		}
	}
	return blogs
}

func TestCSRFTokenScrapedOnceAndSentWithMutations(t *testing.T) {
	var pageHits int32
	var keys []string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		_, _ = io.WriteString(w, csrfPage)
	})
	mux.HandleFunc("/api/v1/user/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "tok-123", r.Header.Get(CSRFHeader))
		keys = append(keys, r.Header.Get(IdempotencyHeader))

		var body CreateCommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "blog-1", body.BlogID)
		assert.Equal(t, "Nice post", body.Content)
		assert.Equal(t, "tok-123", body.CSRFToken)

		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Comment-added"})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		env, err := c.CreateComment(ctx, "blog-1", "Nice post")
		require.NoError(t, err)
		assert.Equal(t, "Comment-added", env.Message)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&pageHits))
	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1], "each mutation gets its own idempotency key")
}

func TestCSRFTokenFromMetaTag(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><head><meta name="csrf-token" content=" meta-tok "></head><body></body></html>`)
	}))

	token, err := c.FetchCSRFToken(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "meta-tok", token)
}

func TestCSRFTokenMissing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body>nothing here</body></html>`)
	}))

	_, err := c.CSRFToken(context.Background())
	assert.Error(t, err)
}

func TestDeleteCommentErrorEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/user/comments/c-9", r.URL.Path)
		writeJSON(w, http.StatusForbidden, map[string]string{"status": "error", "message": "Not-your-comment"})
	}))
	c.SetCSRFToken("tok")

	_, err := c.DeleteComment(context.Background(), "c-9")
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not-your-comment", apiErr.Message)
	assert.Equal(t, clierrors.ErrorTypeForbidden, clierrors.CategorizeError(err).Type)
}

func TestErrorStatusInsideSuccessResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "Already subscribed"})
	}))
	c.SetCSRFToken("tok")

	_, err := c.Subscribe(context.Background(), "u1", "reader@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already subscribed")
}

func TestBlogsAfter(t *testing.T) {
	first := fakeBlogs(3)
	var paths []string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/api/v1/blogs":
			writeJSON(w, http.StatusOK, first)
		case "/api/v1/blogs/" + first[2].ID:
			writeJSON(w, http.StatusOK, map[string]interface{}{"blogs": fakeBlogs(2)})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "message": "No more blogs"})
		}
	}))
	ctx := context.Background()

	blogs, err := c.BlogsAfter(ctx, "")
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	assert.Equal(t, first[0].ID, blogs[0].ID)
	assert.Equal(t, first[2].Title, blogs[2].Title)

	next, err := c.BlogsAfter(ctx, blogs[2].ID)
	require.NoError(t, err)
	assert.Len(t, next, 2)

	_, err = c.BlogsAfter(ctx, "42")
	assert.ErrorIs(t, err, clierrors.ErrNoMoreData)

	assert.Equal(t, []string{"/api/v1/blogs", "/api/v1/blogs/" + first[2].ID, "/api/v1/blogs/42"}, paths)
}

func TestSearchShapes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("query") {
		case "bare":
			writeJSON(w, http.StatusOK, []SearchResult{{Title: "Go tips", Slug: "go-tips"}})
		case "wrapped":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"results": []SearchResult{{Title: "A", Slug: "a"}, {Title: "B", Slug: "b"}},
			})
		case "empty":
			writeJSON(w, http.StatusOK, []SearchResult{})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "message": "No results"})
		}
	}))
	ctx := context.Background()

	results, err := c.Search(ctx, "bare")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go-tips", results[0].Slug)

	results, err = c.Search(ctx, "wrapped")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = c.Search(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = c.Search(ctx, "missing")
	assert.ErrorIs(t, err, clierrors.ErrNoMoreData)
}

func TestGetCurrentUser(t *testing.T) {
	authorized := true
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "error", "message": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]string{"user_id": "u1", "username": "ink"},
		})
	}))

	user, err := c.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ink", user.Username)

	authorized = false
	_, err = c.GetCurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestReportViewEscapesKey(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/statistics/views/my%20post", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, ViewStats{Status: "success", Views: 12})
	}))

	stats, err := c.ReportView(context.Background(), "my post")
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Views)
}

func TestCreateBlogValidatesBeforeSending(t *testing.T) {
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))

	_, err := c.CreateBlog(context.Background(), BlogDraft{Title: "Only a title"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The following fields are required: Description, Slug")
	assert.Contains(t, err.Error(), "Cover")
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestCreateBlogMultipart(t *testing.T) {
	cover := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(cover, []byte("png-bytes"), 0600))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, csrfPage)
	})
	mux.HandleFunc("/api/blog", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Hello World", r.FormValue("title"))
		assert.Equal(t, "hello-world", r.FormValue("slug"))
		assert.Equal(t, "go,testing", r.FormValue("tags"))
		assert.Equal(t, "public", r.FormValue("visibility"))
		assert.Equal(t, "true", r.FormValue("featured"))
		assert.NotEmpty(t, r.Header.Get(IdempotencyHeader))

		f, _, err := r.FormFile("cover")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(data))

		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Blog created", "blog_slug": "hello-world"})
	})

	c := newTestClient(t, mux)
	slug, err := c.CreateBlog(context.Background(), BlogDraft{
		Title:       "Hello World",
		Description: "First post",
		Slug:        "Hello-World",
		Tags:        []string{"go", "testing"},
		Category:    "Programming",
		Visibility:  "Public",
		Featured:    true,
		Content:     "<p>hi</p>",
		CoverPath:   cover,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)
}

func TestUpdateBlogKeepsExistingCover(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/blog/b-1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://cdn.example.com/c.png", r.FormValue("cover"))
		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Blog updated", "slug": "edited"})
	}))
	c.SetCSRFToken("tok")

	slug, err := c.UpdateBlog(context.Background(), "b-1", BlogDraft{
		Title: "T", Description: "D", Slug: "edited", Tags: []string{"x"},
		Category: "c", Visibility: "private", Content: "body",
		CoverURL: "https://cdn.example.com/c.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", slug)
}

func TestExportAccountStreams(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/u1/export", r.URL.Path)
		_, _ = io.WriteString(w, `{"user":"u1","blogs":[]}`)
	}))

	var sb strings.Builder
	n, err := c.ExportAccount(context.Background(), "u1", &sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Equal(t, `{"user":"u1","blogs":[]}`, sb.String())
}

func TestExportAccountError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "error", "message": "Sign in first"})
	}))

	_, err := c.ExportAccount(context.Background(), "u1", io.Discard)
	assert.True(t, IsUnauthorized(err))
}

func TestBlogPathEscapesSlug(t *testing.T) {
	assert.Equal(t, "/blog/hello", BlogPath("hello"))
	assert.Equal(t, "/blog/what%3Fnow%23top", BlogPath("what?now#top"))

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blog/what?now", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `<html><head><title>Odd</title></head><body><h1>Odd</h1></body></html>`)
	}))

	page, err := c.GetBlogPage(context.Background(), "what?now")
	require.NoError(t, err)
	assert.Equal(t, "Odd", page.Title)
}

func TestGetBlogPage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blog/hello", r.URL.Path)
		_, _ = io.WriteString(w, `<html><head><title>Hello | InkBloom</title>
<meta name="description" content="A greeting"></head>
<body><h1>Hello</h1><input id="csrf_token" value="page-tok"></body></html>`)
	}))

	page, err := c.GetBlogPage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", page.Title)
	assert.Equal(t, "A greeting", page.Summary)
	assert.Equal(t, "page-tok", page.CSRFToken)

	token, err := c.CSRFToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "page-tok", token)
}

func TestSendFeedback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "great site", body["feedback"])
		assert.Equal(t, "tok", body["csrf_token"])
		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Thanks"})
	}))
	c.SetCSRFToken("tok")

	env, err := c.SendFeedback(context.Background(), "great site")
	require.NoError(t, err)
	assert.True(t, env.OK())
}
