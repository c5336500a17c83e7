package cmd

import (
	"io"
	"path/filepath"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/config"
	"github.com/Ahnaf19/JobSnap/internal/network"
	"github.com/Ahnaf19/JobSnap/internal/scraper"
	"github.com/Ahnaf19/JobSnap/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	ProjectDir string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Fetcher replaces the network fetcher when set.
	Fetcher scraper.Fetcher
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// savedAt is the current time as stored in records.
func (c *Context) savedAt() string {
	return c.now().UTC().Format(time.RFC3339)
}

// fetcher builds the bdjobs fetcher, rotating through proxies when any are
// configured.
func (c *Context) fetcher(proxiesFlag string) (scraper.Fetcher, error) {
	if c.Fetcher != nil {
		return c.Fetcher, nil
	}

	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, network.DefaultBanDuration)
		if err != nil {
			return nil, exitError(ExitInvalidArgs, err)
		}
		c.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	timeout := time.Duration(c.Config.TimeoutSeconds) * time.Second
	registry, err := scraper.Registry(rotator, c.Logger, network.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return registry[scraper.SiteBdjobs], nil
}

// proxyFetcher builds a fetcher that sends every request through proxy.
func (c *Context) proxyFetcher(proxy string, timeout time.Duration) (scraper.Fetcher, error) {
	rotator, err := network.NewRotator([]string{proxy}, network.DefaultBanDuration)
	if err != nil {
		return nil, err
	}
	if c.Fetcher != nil {
		return c.Fetcher, nil
	}
	registry, err := scraper.Registry(rotator, c.Logger, network.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return registry[scraper.SiteBdjobs], nil
}

// resolvePath anchors relative paths at the project directory.
func (c *Context) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectDir, path)
}

// displayPath shows path relative to the project directory when possible.
func (c *Context) displayPath(path string) string {
	if path == "" || c.ProjectDir == "" {
		return path
	}
	rel, err := filepath.Rel(c.ProjectDir, path)
	if err != nil {
		return path
	}
	return rel
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
