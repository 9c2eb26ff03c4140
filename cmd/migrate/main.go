package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"itorg-api/internal/config"
	"itorg-api/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	defaults := config.Load()

	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the embedded schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-driver", Value: defaults.DBDriver, Usage: "sqlite or pgx"},
			&cli.StringFlag{Name: "db-dsn", Value: defaults.DBDSN, Usage: "SQLite path or Postgres URL"},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply every pending migration",
				Action: withStore(func(ctx context.Context, st *store.Store) error {
					n, err := st.Migrate(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("applied %d migration(s)\n", n)
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: withStore(func(ctx context.Context, st *store.Store) error {
					v, err := st.MigrateDown(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("rolled back version %d\n", v)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "List migrations and whether they are applied",
				Action: withStore(func(ctx context.Context, st *store.Store) error {
					statuses, err := st.MigrationStatus(ctx)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "VERSION\tAPPLIED\tAPPLIED AT\tFILE")
					for _, s := range statuses {
						at := "-"
						if s.Applied {
							at = s.AppliedAt.Format(time.RFC3339)
						}
						fmt.Fprintf(w, "%d\t%t\t%s\t%s\n", s.Version, s.Applied, at, s.Path)
					}
					return w.Flush()
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}

func withStore(fn func(ctx context.Context, st *store.Store) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		st, err := store.Open(ctx, c.String("db-driver"), c.String("db-dsn"))
		if err != nil {
			return err
		}
		defer st.Close()
		return fn(ctx, st)
	}
}
