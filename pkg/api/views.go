package api

import (
	"context"
	"net/url"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	json "github.com/json-iterator/go"
)

// ReportView increments the view count of the resource behind key.
// Deduplication is the caller's job.
func (c *Client) ReportView(ctx context.Context, key string) (*ViewStats, error) {
	logger.Debug("Reporting view", "key", key)

	resp, err := c.read(ctx).Post("/api/v1/statistics/views/" + url.PathEscape(key))
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var stats ViewStats
	if len(resp.Body()) > 0 {
		_ = json.Unmarshal(resp.Body(), &stats)
	}
	return &stats, nil
}
