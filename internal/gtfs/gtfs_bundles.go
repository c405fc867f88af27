package gtfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	remoteGtfs "github.com/jamespfennell/gtfs"
	"tripassistant.ucmerced.edu/internal/config"
	"tripassistant.ucmerced.edu/internal/utils"
)

const cachePrefix = "gtfs"

// downloadGTFSBundle fetches the raw bytes of a static GTFS bundle,
// retrying transient failures with backoff.
func downloadGTFSBundle(ctx context.Context, client *http.Client, url string, maxRetries int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := config.DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS bundle response body from %s: %w", url, err)
	}
	return data, nil
}

func parseGTFSBundle(data []byte) (*remoteGtfs.Static, error) {
	staticBundle, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS static data: %w", err)
	}
	return staticBundle, nil
}

// cacheGTFSBundle writes a downloaded bundle to cacheDir so a later failed
// download can fall back to it.
func cacheGTFSBundle(cacheDir, url string, data []byte) (string, error) {
	if err := utils.CreateCacheDirectory(cacheDir); err != nil {
		return "", err
	}
	path := filepath.Join(cacheDir, utils.CacheFileName(cachePrefix, url, ".zip"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to cache GTFS bundle: %w", err)
	}
	return path, nil
}

// lastCachedGTFSBundle reads the newest cached bundle for url.
func lastCachedGTFSBundle(cacheDir, url string) ([]byte, error) {
	name := utils.CacheFileName(cachePrefix, url, "")
	path, err := utils.GetLastCachedFile(cacheDir, name)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is built from our own cache directory.
	return os.ReadFile(path)
}
