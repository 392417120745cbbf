package fetch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"pyforge/internal/release"
)

var (
	// ErrTransfer covers request failures and non-success HTTP statuses.
	ErrTransfer = errors.New("transfer failed")
	// ErrChecksumMismatch means the downloaded bytes do not match the catalog digest.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrExtract covers decompression and unpacking failures.
	ErrExtract = errors.New("extract failed")
)

const defaultUserAgent = "pyforge/1.0"

// Fetcher downloads, verifies and unpacks release archives.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Logger    zerolog.Logger
}

// New returns a fetcher using client, or http.DefaultClient when nil.
func New(client *http.Client, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client, UserAgent: defaultUserAgent, Logger: logger}
}

// Acquire downloads rel.URL, verifies it against rel.Checksum and unpacks it
// into targetDir. Nothing is extracted unless the digest matches, and an
// unverified release is refused before any request is made.
func (f *Fetcher) Acquire(ctx context.Context, rel release.Release, targetDir string) error {
	log := f.Logger.With().Str("component", "fetch").Str("release", rel.String()).Logger()

	if rel.Unverified || rel.Checksum == "" {
		return fmt.Errorf("%w: %s", release.ErrUnverified, rel)
	}

	log.Info().Str("url", rel.URL).Msg("downloading")
	body, err := f.download(ctx, rel.URL)
	if err != nil {
		return err
	}
	log.Info().Str("size", humanize.Bytes(uint64(len(body)))).Msg("downloaded")

	if err := Verify(body, rel.Checksum); err != nil {
		return fmt.Errorf("%s: %w", rel.URL, err)
	}
	log.Debug().Msg("checksum verified")

	format, err := formatFromURL(rel.URL)
	if err != nil {
		return err
	}
	if err := extract(format, bytes.NewReader(body), targetDir); err != nil {
		return err
	}
	log.Info().Str("dest", targetDir).Msg("extracted")
	return nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransfer, err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", ErrTransfer, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: download %s: unexpected status %s", ErrTransfer, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", ErrTransfer, url, err)
	}
	return body, nil
}

// Verify compares the sha256 of data against a hex digest, ignoring case.
func Verify(data []byte, expected string) error {
	sum := Checksum(data)
	if !strings.EqualFold(sum, strings.TrimSpace(expected)) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, sum)
	}
	return nil
}

// Checksum returns the hex-encoded sha256 of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
