package api

import (
	"context"
	"fmt"

	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
)

// Search queries blogs by title. A 404 means no matches and is reported
// as ErrNoMoreData.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	logger.Debug("Searching", "query", query)

	resp, err := c.read(ctx).
		SetQueryParam("query", query).
		Get("/api/v1/search")
	if err := CheckResponse(resp, err); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("search %q: %w", query, clierrors.ErrNoMoreData)
		}
		return nil, err
	}

	return decodeList[SearchResult](resp.Body(), "results")
}
