package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/rs/zerolog"
)

var ErrInvalidJobURL = errors.New("no bdjobs job id in url")

var jobDetailsPath = regexp.MustCompile(`/jobs/details/(\d+)`)

// Bdjobs fetches job detail pages from bdjobs.com.
type Bdjobs struct {
	client Doer
	logger zerolog.Logger
}

func NewBdjobs(client Doer, logger zerolog.Logger) *Bdjobs {
	return &Bdjobs{client: client, logger: logger}
}

func (b *Bdjobs) Name() string {
	return SiteBdjobs
}

// FetchHTML returns the page body verbatim. Relative targets resolve against
// the bdjobs site root.
func (b *Bdjobs) FetchHTML(ctx context.Context, target string) (string, error) {
	target = absoluteURL(parser.DetailsBaseURL, strings.TrimSpace(target))
	if target == "" {
		return "", ErrInvalidJobURL
	}

	b.logger.Debug().Str("url", target).Msg("fetching job page")
	html, err := fetchPage(ctx, b.client, target, map[string]string{
		"referer": "https://bdjobs.com/",
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	b.logger.Debug().Str("url", target).Int("bytes", len(html)).Msg("fetched job page")
	return html, nil
}

// ExtractJobID returns the numeric segment following /jobs/details/ in the
// path of rawURL. Relative or unparseable URLs and other paths report false.
func ExtractJobID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	m := jobDetailsPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CanonicalURL rewrites any job URL to its canonical detail page.
func CanonicalURL(rawURL string) (string, error) {
	id, ok := ExtractJobID(rawURL)
	if !ok {
		return "", ErrInvalidJobURL
	}
	return parser.DetailsURL(id), nil
}
