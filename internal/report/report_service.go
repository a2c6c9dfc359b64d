package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"obracheck/internal/attendance"
	reporterrors "obracheck/internal/report/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var formats = []Format{FormatPDF, FormatXLSX}

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", reporterrors.ErrUnsupportedFormat
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// CacheKey is where a rendered report lives in Redis.
func CacheKey(format Format, siteID int64, date string) string {
	return fmt.Sprintf("reports:attendance:%s:%d:%s", format, siteID, date)
}

// RosterSource yields the roster as the backend currently holds it.
type RosterSource interface {
	Reconciled(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error)
}

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service interface {
	Render(ctx context.Context, key attendance.RosterKey, format Format) (Document, error)
	Invalidate(ctx context.Context, siteID int64, date string) error
}

type service struct {
	source RosterSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewService wires report rendering. A nil rdb or a zero ttl renders on every
// request.
func NewService(source RosterSource, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{source: source, rdb: rdb, ttl: ttl, logger: l}
}

func (s *service) cacheEnabled() bool {
	return s.rdb != nil && s.ttl > 0
}

func (s *service) Render(ctx context.Context, key attendance.RosterKey, format Format) (Document, error) {
	doc := Document{
		Filename:    fmt.Sprintf("asistencia_%d_%s.%s", key.SiteID, key.Date, format),
		ContentType: format.ContentType(),
	}
	cacheKey := CacheKey(format, key.SiteID, key.Date)

	if s.cacheEnabled() {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			doc.Body = cached
			return doc, nil
		case err != redis.Nil:
			s.logger.Warn("read report cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	roster, err := s.source.Reconciled(ctx, key)
	if err != nil {
		return Document{}, err
	}

	meta := Meta{SiteID: key.SiteID, SiteName: roster.SiteName, Date: key.Date}
	var body []byte
	switch format {
	case FormatXLSX:
		body, err = RenderXLSX(meta, roster.Records)
	default:
		body, err = RenderPDF(meta, roster.Records)
	}
	if err != nil {
		s.logger.Error("render report failed", zap.String("key", cacheKey), zap.Error(err))
		return Document{}, reporterrors.ErrRenderFailed.WithCause(err)
	}

	if s.cacheEnabled() {
		if err := s.rdb.Set(ctx, cacheKey, body, s.ttl).Err(); err != nil {
			s.logger.Warn("write report cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	doc.Body = body
	return doc, nil
}

// Invalidate drops every cached format of one roster.
func (s *service) Invalidate(ctx context.Context, siteID int64, date string) error {
	if s.rdb == nil {
		return nil
	}
	keys := make([]string, len(formats))
	for i, f := range formats {
		keys[i] = CacheKey(f, siteID, date)
	}
	return s.rdb.Del(ctx, keys...).Err()
}
