// cmd/fillratectl/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"fillrate/internal/repository/postgres"
	"fillrate/internal/store"
	"fillrate/internal/week"
	"fillrate/internal/workflow"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newStoreFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "store",
		Usage:    "Location identifier",
		Required: true,
	}
}

func newDateFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "date",
		Usage: "Any date inside the target week (YYYY-MM-DD), defaults to today",
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "fillratectl",
		Usage: "Manage the weekly fill-rate database from the shell",
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Manage the database schema",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Create the report and catalog tables",
						Flags:  []cli.Flag{newDBURLFlag()},
						Action: schemaInit,
					},
				},
			},
			{
				Name:  "catalog",
				Usage: "Manage the SKU reference list",
				Subcommands: []*cli.Command{
					{
						Name:  "seed",
						Usage: "Load catalog entries from a CSV file (sku,description,um,price,type)",
						Flags: []cli.Flag{
							newDBURLFlag(),
							&cli.StringFlag{
								Name:     "file",
								Usage:    "CSV file to load",
								Required: true,
							},
						},
						Action: catalogSeed,
					},
				},
			},
			{
				Name:  "week",
				Usage: "Run bulk weekly workflows",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Seed a store's week with zero-valued rows from the catalog",
						Flags:  []cli.Flag{newDBURLFlag(), newStoreFlag(), newDateFlag()},
						Action: weekInit,
					},
					{
						Name:   "copy",
						Usage:  "Copy the previous week's rows into the target week",
						Flags:  []cli.Flag{newDBURLFlag(), newStoreFlag(), newDateFlag()},
						Action: weekCopy,
					},
					{
						Name:  "clear",
						Usage: "Delete a week's rows for one store, or every store with --all-stores",
						Flags: []cli.Flag{
							newDBURLFlag(),
							newDateFlag(),
							&cli.StringFlag{Name: "store", Usage: "Location identifier"},
							&cli.BoolFlag{Name: "all-stores", Usage: "Clear the week across every location"},
							&cli.BoolFlag{Name: "yes", Usage: "Skip the confirmation prompt"},
						},
						Action: weekClear,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// runnerFor wires the full report stack against the database named by db-url
// and primes its caches. The CLI connects through the pgx driver.
func runnerFor(c *cli.Context) (*workflow.Runner, error) {
	db, err := postgres.NewDBFromDSN("pgx", c.String("db-url"))
	if err != nil {
		return nil, err
	}

	reportRepo := postgres.NewReportRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)

	reportStore := store.NewReportStore(reportRepo)
	if err := reportStore.LoadAll(c.Context); err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	return workflow.NewRunner(reportStore, reportRepo, catalogRepo, workflow.DefaultBatchPolicy()), nil
}

func targetWindow(c *cli.Context) (time.Time, error) {
	raw := c.String("date")
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func weekInit(c *cli.Context) error {
	date, err := targetWindow(c)
	if err != nil {
		return err
	}

	runner, err := runnerFor(c)
	if err != nil {
		return err
	}

	window := week.ForDate(date)
	result, err := runner.InitializeWeekFromCatalog(c.Context, c.String("store"), window)
	if err != nil {
		return err
	}

	fmt.Printf("week %d/%d for %s: inserted %d, skipped %d, failed %d\n",
		window.WeekNumber, window.Year, c.String("store"), result.Inserted, result.Skipped, result.Failed)
	return nil
}

func weekCopy(c *cli.Context) error {
	date, err := targetWindow(c)
	if err != nil {
		return err
	}

	runner, err := runnerFor(c)
	if err != nil {
		return err
	}

	window := week.ForDate(date)
	result, err := runner.CopyFromPreviousWeek(c.Context, c.String("store"), window)
	if err != nil {
		return err
	}

	fmt.Printf("week %d/%d for %s: copied %d, failed %d\n",
		window.WeekNumber, window.Year, c.String("store"), result.Saved, result.Failed)
	return nil
}

func weekClear(c *cli.Context) error {
	date, err := targetWindow(c)
	if err != nil {
		return err
	}

	allStores := c.Bool("all-stores")
	location := c.String("store")
	if !allStores && location == "" {
		return fmt.Errorf("either --store or --all-stores is required")
	}

	window := week.ForDate(date)
	if !c.Bool("yes") {
		scope := location
		if allStores {
			scope = "ALL stores"
		}
		fmt.Printf("About to delete week %d/%d for %s. Re-run with --yes to confirm.\n",
			window.WeekNumber, window.Year, scope)
		return nil
	}

	runner, err := runnerFor(c)
	if err != nil {
		return err
	}

	var result workflow.ClearResult
	if allStores {
		result, err = runner.ClearAllLocationsForWeek(c.Context, window)
	} else {
		result, err = runner.ClearStoreForWeek(c.Context, location, window)
	}
	if err != nil {
		return err
	}

	fmt.Printf("deleted %d rows\n", result.Deleted)
	return nil
}
