package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/feed"
)

// HTTPSource fetches the published-spreadsheet CSV endpoints over plain GET.
type HTTPSource struct {
	httpClient *resty.Client
	cfg        config.FeedsConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewHTTPSource builds a resty-backed feed source from the configured URLs.
func NewHTTPSource(cfg config.FeedsConfig, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Accept", "text/csv, text/plain").
		SetTimeout(15 * time.Second)

	return &HTTPSource{
		httpClient: restyClient,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// CatalogRows fetches and row-splits the item catalog feed.
func (s *HTTPSource) CatalogRows(ctx context.Context) ([][]string, error) {
	return s.fetchRows(ctx, s.cfg.CatalogURL, false)
}

// SummaryRows fetches and row-splits the inventory summary feed. The request
// is cache-busted so intermediaries never serve a stale snapshot.
func (s *HTTPSource) SummaryRows(ctx context.Context) ([][]string, error) {
	return s.fetchRows(ctx, s.cfg.SummaryURL, true)
}

// ResourceRows fetches and row-splits the resources directory feed.
func (s *HTTPSource) ResourceRows(ctx context.Context) ([][]string, error) {
	if s.cfg.ResourcesURL == "" {
		return nil, nil
	}
	return s.fetchRows(ctx, s.cfg.ResourcesURL, true)
}

func (s *HTTPSource) fetchRows(ctx context.Context, url string, cacheBust bool) ([][]string, error) {
	req := s.httpClient.R().SetContext(ctx)
	if cacheBust {
		req.SetQueryParam("t", strconv.FormatInt(s.now().UnixMilli(), 10))
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch feed %s: status %d", url, resp.StatusCode())
	}

	body := string(resp.Body())
	if body == "" {
		return nil, fmt.Errorf("fetch feed %s: empty response", url)
	}

	rows, warnings := feed.ParseRows(body)
	for _, warning := range warnings {
		s.logger.Debug("feed parse warning", zap.String("url", url), zap.String("warning", warning))
	}

	return rows, nil
}
