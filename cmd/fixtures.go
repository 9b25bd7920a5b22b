package main

import (
	"context"

	"github.com/desertthunder/jukeseed/internal/fixtures"
	"github.com/desertthunder/jukeseed/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Fixtures prints the embedded fixture documents, or writes them to --output.
func (r *Runner) Fixtures(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	all, err := fixtures.Load()
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(format, all, path); err != nil {
			return err
		}
		r.logger.Info("fixtures written", "path", path, "format", format, "count", len(all))
		return nil
	}

	data, err := formatter.Export(format, all)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
