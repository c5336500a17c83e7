package main

import (
	"fmt"
	"os"

	"github.com/Ahnaf19/JobSnap/internal/cmd"
	"github.com/Ahnaf19/JobSnap/internal/config"
	"github.com/Ahnaf19/JobSnap/internal/ui"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("jobsnap"),
		kong.Description("Save bdjobs.com job circulars as Markdown snapshots."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitUnknown)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("JOBSNAP_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		os.Exit(cmd.ExitInvalidArgs)
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor)

	projectDir, err := os.Getwd()
	if err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(cmd.ExitUnknown)
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(cmd.ExitCode(err))
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(cmd.ExitUnknown)
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	runCtx := &cmd.Context{
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		ProjectDir: projectDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(cmd.ExitCode(err))
	}
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if config.EnvBool(os.Getenv("JOBSNAP_JSON")) {
		cli.JSON = true
	}
	if config.EnvBool(os.Getenv("JOBSNAP_VERBOSE")) {
		cli.Verbose = true
	}
	if value := os.Getenv("JOBSNAP_COLOR"); value != "" {
		cli.Color = value
	}
}
