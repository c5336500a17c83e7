package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Ahnaf19/JobSnap/internal/parser"
)

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return json.NewEncoder(ctx.Out).Encode(map[string]string{
			"version":        ctx.Version,
			"parser_version": parser.Version,
		})
	}
	_, err := fmt.Fprintf(ctx.Out, "%s (parser %s)\n", ctx.Version, parser.Version)
	return err
}
