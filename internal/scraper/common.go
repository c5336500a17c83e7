package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/Ahnaf19/JobSnap/internal/network"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 8 << 20

// Doer is the part of network.Client a fetcher needs.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

func fetchPage(ctx context.Context, client Doer, target string, headers map[string]string) (string, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	applyHeaders(req, headers)
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: http %d", network.ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
