package scraper

import (
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/network"
	"github.com/rs/zerolog"
)

const SiteBdjobs = "bdjobs"

// Hosts are the bdjobs hostnames whose pages the parser understands.
var Hosts = []string{"bdjobs.com", "jobs.bdjobs.com"}

func Registry(rotator *network.Rotator, logger zerolog.Logger, opts ...network.Option) (map[string]Fetcher, error) {
	client, err := network.NewClient(rotator, opts...)
	if err != nil {
		return nil, err
	}
	return map[string]Fetcher{
		SiteBdjobs: NewBdjobs(client, logger),
	}, nil
}

// KnownHost reports whether host is one of Hosts.
func KnownHost(host string) bool {
	host = NormalizeHost(host)
	for _, known := range Hosts {
		if host == known {
			return true
		}
	}
	return false
}

func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}
