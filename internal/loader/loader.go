// Package loader fetches the one-shot seed batch the engine is populated
// from: a flat JSON array of raw records, read from an HTTP endpoint or a
// local file.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
	"github.com/anishtharur/Simple-Admin-UI/internal/logger"
	"github.com/anishtharur/Simple-Admin-UI/internal/metrics"
	"github.com/anishtharur/Simple-Admin-UI/internal/validator"
)

// MaxSeedBytes caps how much seed data the loader will read. The seed is
// admin-console scale, not a bulk data feed.
const MaxSeedBytes = 8 * 1024 * 1024 // 8MB

// Engine is the part of the record-set engine the loader drives.
type Engine interface {
	Load(raw []domain.RawRecord)
	MarkLoadFailed()
}

// Loader reads and validates the seed batch. A file source, when set,
// takes priority over the URL source.
type Loader struct {
	url       string
	file      string
	client    *http.Client
	validator *validator.Validator
}

// New creates a Loader for the given sources.
func New(url, file string, timeout time.Duration) *Loader {
	return &Loader{
		url:       url,
		file:      file,
		client:    &http.Client{Timeout: timeout},
		validator: validator.NewValidator(),
	}
}

// Fetch reads the seed source and returns the valid raw records plus the
// number of entries skipped by validation. Malformed entries are rejected
// per record rather than failing the whole batch; only an unreadable or
// unparseable source is an error.
func (l *Loader) Fetch(ctx context.Context) ([]domain.RawRecord, int, error) {
	data, source, err := l.read(ctx)
	if err != nil {
		return nil, 0, err
	}

	var entries []domain.RawRecord
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, fmt.Errorf("parse seed from %s: %w", source, err)
	}

	valid := make([]domain.RawRecord, 0, len(entries))
	skipped := 0
	for i := range entries {
		if err := l.validator.ValidateRaw(&entries[i]); err != nil {
			skipped++
			logger.Warn("skipping malformed seed entry",
				slog.Int("index", i),
				slog.String("fields", strings.Join(validator.FieldErrors(err), ",")))
			continue
		}
		valid = append(valid, entries[i])
	}

	logger.Info("seed fetched",
		slog.String("source", source),
		slog.Int("records", len(valid)),
		slog.Int("skipped", skipped))
	return valid, skipped, nil
}

// Seed fetches the seed batch and hands it to the engine. On failure the
// engine is marked load-failed and left empty; the condition is reported
// once and there is no automatic retry.
func (l *Loader) Seed(ctx context.Context, e Engine) {
	timer := metrics.NewTimer()
	records, skipped, err := l.Fetch(ctx)
	if err != nil {
		logger.Error("seed load failed", slog.String("error", err.Error()))
		metrics.ObserveSeedLoad("failure", timer.Elapsed(), 0)
		e.MarkLoadFailed()
		return
	}
	e.Load(records)
	metrics.ObserveSeedLoad("success", timer.Elapsed(), skipped)
}

// read pulls the raw seed bytes from the configured source.
func (l *Loader) read(ctx context.Context) ([]byte, string, error) {
	if l.file != "" {
		data, err := os.ReadFile(l.file)
		if err != nil {
			return nil, l.file, fmt.Errorf("read seed file: %w", err)
		}
		return data, l.file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, l.url, fmt.Errorf("build seed request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, l.url, fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, l.url, fmt.Errorf("fetch seed: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSeedBytes))
	if err != nil {
		return nil, l.url, fmt.Errorf("read seed response: %w", err)
	}
	return data, l.url, nil
}
