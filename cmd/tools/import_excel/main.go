package main

import (
	"context"
	"encoding/json"
	"os"

	"itorg-api/internal/config"
	"itorg-api/internal/store"
	"itorg-api/pkg/importer"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	defaults := config.Load()

	cmd := &cli.Command{
		Name:  "import_excel",
		Usage: "Import assets from an .xlsx workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "path to the .xlsx workbook"},
			&cli.StringFlag{Name: "mapping", Usage: "YAML header mapping; built-in when empty"},
			&cli.BoolFlag{Name: "dry-run", Usage: "validate without writing"},
			&cli.IntFlag{Name: "max-errors", Value: 50},
			&cli.StringFlag{Name: "db-driver", Value: defaults.DBDriver},
			&cli.StringFlag{Name: "db-dsn", Value: defaults.DBDSN},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger, err := config.ConfigureLogger(defaults.Debug)
			if err != nil {
				return err
			}

			f, err := os.Open(c.String("file"))
			if err != nil {
				return errors.Wrap(err, "open workbook")
			}
			defer f.Close()

			st, err := store.Open(ctx, c.String("db-driver"), c.String("db-dsn"))
			if err != nil {
				return err
			}
			defer st.Close()

			sum, impErr := importer.ImportAssets(ctx, st, f, importer.ImportOptions{
				MappingPath: c.String("mapping"),
				DryRun:      c.Bool("dry-run"),
				MaxErrors:   int(c.Int("max-errors")),
				Logger:      logger,
			})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(sum); err != nil {
				return err
			}
			return impErr
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("import_excel")
	}
}
