package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

const (
	defaultLogoTimeout = 5 * time.Second
	maxLogoBytes       = 2 << 20
)

// loadLogo resolves a company logo from either a base64 data URI or an
// HTTP(S) URL. Callers treat a failure as "render without logo": the logo
// is decorative and must never block document generation.
func loadLogo(ctx context.Context, source string, timeout time.Duration) ([]byte, extension.Type, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, "", fmt.Errorf("empty logo source")
	}

	if strings.HasPrefix(source, "data:image/") {
		return decodeLogoDataURI(source)
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if timeout <= 0 {
			timeout = defaultLogoTimeout
		}
		return fetchLogo(ctx, source, timeout)
	}

	return nil, "", fmt.Errorf("unsupported logo source %q", truncate(source, 32))
}

func decodeLogoDataURI(uri string) ([]byte, extension.Type, error) {
	meta, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, "", fmt.Errorf("malformed logo data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("logo data URI is not base64 encoded")
	}

	mime := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	ext, err := imageExtension(mime)
	if err != nil {
		return nil, "", err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding logo data URI: %w", err)
	}
	if len(raw) > maxLogoBytes {
		return nil, "", fmt.Errorf("logo exceeds %d bytes", maxLogoBytes)
	}
	return raw, ext, nil
}

func fetchLogo(ctx context.Context, url string, timeout time.Duration) ([]byte, extension.Type, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building logo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching logo: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading logo body: %w", err)
	}
	if len(raw) > maxLogoBytes {
		return nil, "", fmt.Errorf("logo exceeds %d bytes", maxLogoBytes)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(raw)
	}
	ext, err := imageExtension(mime)
	if err != nil {
		return nil, "", err
	}
	return raw, ext, nil
}

func imageExtension(mime string) (extension.Type, error) {
	mime, _, _ = strings.Cut(mime, ";")
	switch strings.TrimSpace(mime) {
	case "image/png":
		return extension.Png, nil
	case "image/jpeg", "image/jpg":
		return extension.Jpg, nil
	default:
		return "", fmt.Errorf("unsupported logo content type %q", mime)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
