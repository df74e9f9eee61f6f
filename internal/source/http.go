package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// HTTPLoader reads a published-sheet CSV export over HTTP. This is the
// default source: a Google Form response sheet published as CSV.
type HTTPLoader struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPLoader creates a loader for the given published CSV URL.
func NewHTTPLoader(url string, timeout time.Duration, logger *slog.Logger) *HTTPLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPLoader{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load performs the one-shot fetch. There is no retry: the published sheet
// is either reachable or the run aborts.
func (l *HTTPLoader) Load(ctx context.Context) (*domain.RawTable, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError("building request", err).
			WithContext("url", l.url)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError("fetching published sheet", err).
			WithContext("url", l.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewSourceUnavailableError(
			fmt.Sprintf("published sheet returned status %d", resp.StatusCode), nil).
			WithContext("url", l.url)
	}

	reader := csv.NewReader(resp.Body)
	// Crowd-sourced sheets are ragged; width is enforced by the normalizer.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError("parsing published sheet as CSV", err).
			WithContext("url", l.url)
	}
	if len(records) == 0 {
		return nil, apperrors.NewSourceUnavailableError("published sheet contained no rows", nil).
			WithContext("url", l.url)
	}

	table := &domain.RawTable{
		Header:    records[0],
		Rows:      records[1:],
		Source:    l.url,
		FetchedAt: time.Now(),
	}

	l.logger.InfoContext(ctx, "fetched published sheet",
		slog.String("url", l.url),
		slog.Int("rows", table.RowCount()),
		slog.Duration("duration", time.Since(start)))

	return table, nil
}
