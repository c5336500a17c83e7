package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Save    SaveCmd    `cmd:"" help:"Fetch a bdjobs job page and save a snapshot."`
	Reparse ReparseCmd `cmd:"" help:"Re-run the parser over a saved snapshot."`
	Parse   ParseCmd   `cmd:"" help:"Parse a saved HTML file without writing a snapshot."`
	List    ListCmd    `cmd:"" help:"List saved jobs from the catalog."`
	Export  ExportCmd  `cmd:"" help:"Export a saved job to HTML or PDF."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Proxies ProxiesCmd `cmd:"" help:"Proxy utilities."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
