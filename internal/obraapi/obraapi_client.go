package obraapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"obracheck/internal/shared/contextutil"
	"obracheck/internal/shared/textutil"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxErrorBody = 512

type Client interface {
	GetSiteAttendance(ctx context.Context, siteID int64, date string) (SiteAttendanceResponse, error)
	BulkUpsertAttendance(ctx context.Context, req BulkAttendanceRequest) error
	ListWorkers(ctx context.Context) ([]WorkerDTO, error)
}

type client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds the REST client for the ObraCheck backend. A nil
// httpClient gets an otelhttp-instrumented default with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger ...*zap.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	l := zap.L().Named("obraapi.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("obraapi.client")
	}
	return &client{baseURL: baseURL, http: httpClient, logger: l}
}

func (c *client) GetSiteAttendance(ctx context.Context, siteID int64, date string) (SiteAttendanceResponse, error) {
	path := "/sites/" + strconv.FormatInt(siteID, 10) + "/attendance"
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}

	var out SiteAttendanceResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return SiteAttendanceResponse{}, err
	}
	return out, nil
}

func (c *client) BulkUpsertAttendance(ctx context.Context, req BulkAttendanceRequest) error {
	return c.do(ctx, http.MethodPost, "/attendance/bulk", nil, req, nil)
}

func (c *client) ListWorkers(ctx context.Context) ([]WorkerDTO, error) {
	var out []WorkerDTO
	if err := c.do(ctx, http.MethodGet, "/workers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	md := contextutil.ExtractMetadata(ctx)
	if md.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+md.AccessToken)
	}
	if md.RequestID != "" {
		req.Header.Set("X-Request-ID", md.RequestID)
	}

	log := contextutil.GetLogger(ctx, c.logger)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("obra api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug("obra api request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(textutil.Truncate(string(raw), maxErrorBody)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
