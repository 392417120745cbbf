// Command gencatalog regenerates internal/release/catalog_gen.go from
// python-build-standalone release metadata on GitHub.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pyforge/internal/release"
)

const userAgent = "pyforge-gencatalog/1.0"

var apiBase = "https://api.github.com"

type githubReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	TagName string               `json:"tag_name"`
	Assets  []githubReleaseAsset `json:"assets"`
}

func main() {
	repo := flag.String("repo", "indygreg/python-build-standalone", "GitHub repository publishing the builds")
	tags := flag.String("tags", "20240107,20231002", "comma separated release tags, newest first")
	output := flag.String("output", "internal/release/catalog_gen.go", "file to write")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := &http.Client{Timeout: 60 * time.Second}
	var catalog release.Catalog
	for _, tag := range strings.Split(*tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		entries, err := catalogForTag(ctx, client, *repo, tag)
		if err != nil {
			log.Fatal().Err(err).Str("tag", tag).Msg("build catalog")
		}
		log.Info().Str("tag", tag).Int("releases", len(entries)).Msg("collected")
		catalog = append(catalog, entries...)
	}

	catalog = dedupe(catalog)
	if err := catalog.Validate(); err != nil {
		log.Fatal().Err(err).Msg("generated catalog is invalid")
	}

	src, err := render(catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("render catalog")
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write catalog")
	}
	log.Info().Str("output", *output).Int("releases", len(catalog)).Msg("catalog written")
}

func catalogForTag(ctx context.Context, client *http.Client, repo, tag string) (release.Catalog, error) {
	var rel githubRelease
	endpoint := fmt.Sprintf("%s/repos/%s/releases/tags/%s", apiBase, repo, tag)
	if err := getJSON(ctx, client, endpoint, &rel); err != nil {
		return nil, err
	}

	sums := make(map[string]string)
	byName := make(map[string]string, len(rel.Assets))
	for _, asset := range rel.Assets {
		byName[asset.Name] = asset.BrowserDownloadURL
	}
	if url, ok := byName["SHA256SUMS"]; ok {
		body, err := get(ctx, client, url)
		if err != nil {
			return nil, err
		}
		sums = parseSums(string(body))
	}

	var (
		mu  sync.Mutex
		out release.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, asset := range rel.Assets {
		asset := asset
		entry, ok := parseAsset(asset.Name, tag)
		if !ok {
			continue
		}
		entry.URL = asset.BrowserDownloadURL

		g.Go(func() error {
			sum, ok := sums[asset.Name]
			if !ok {
				url, found := byName[asset.Name+".sha256"]
				if !found {
					log.Warn().Str("asset", asset.Name).Msg("no checksum published, skipping")
					return nil
				}
				body, err := get(gctx, client, url)
				if err != nil {
					return err
				}
				sum = firstField(string(body))
			}
			entry.Checksum = strings.ToLower(sum)

			mu.Lock()
			out = append(out, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	body, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && strings.HasPrefix(url, apiBase+"/") {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
