package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/Ahnaf19/JobSnap/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config file locations."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type InitConfigCmd struct {
	Project bool `help:"Write jobsnap.config.json in the current directory instead."`
}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	if c.Project {
		path, created, err := config.InitProject(ctx.ProjectDir)
		if err != nil {
			return exitError(ExitWriteFailed, err)
		}
		if !created {
			ctx.UI.Infof("Project config already exists at %s", ctx.displayPath(path))
			return nil
		}
		ctx.UI.Infof("Created: %s", ctx.displayPath(path))
		return nil
	}

	paths, err := config.Init()
	if err != nil {
		return exitError(ExitWriteFailed, err)
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "config_dir\t%s\n", ctx.ConfigDir)
	fmt.Fprintf(tw, "user_config\t%s\n", filepath.Join(ctx.ConfigDir, config.ConfigFileName))
	fmt.Fprintf(tw, "proxies\t%s\n", filepath.Join(ctx.ConfigDir, config.ProxiesFileName))
	fmt.Fprintf(tw, "project_config\t%s\n", filepath.Join(ctx.ProjectDir, config.ProjectFileName))
	fmt.Fprintf(tw, "dotenv\t%s\n", filepath.Join(ctx.ProjectDir, config.DotEnvFileName))
	return tw.Flush()
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(ctx.Config)
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "output_dir\t%s\n", ctx.Config.OutputDir)
	fmt.Fprintf(tw, "template\t%s\n", ctx.Config.Template)
	fmt.Fprintf(tw, "skip\t%t\n", ctx.Config.Skip)
	fmt.Fprintf(tw, "timeout_seconds\t%d\n", ctx.Config.TimeoutSeconds)
	return tw.Flush()
}
