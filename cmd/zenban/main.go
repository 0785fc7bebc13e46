package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"zenban/internal/api"
	"zenban/internal/auth"
	"zenban/internal/cache"
	"zenban/internal/cli"
	"zenban/internal/config"
	"zenban/internal/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	database, err := db.OpenDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := auth.NewSQLiteStore(database)
	coord := auth.NewCoordinator()

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogAPICalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(cfg, store, coord, observer)

	app := &cli.App{
		Accounts:  client,
		Boards:    client,
		Columns:   client,
		Tasks:     client,
		Tags:      client,
		Members:   client,
		Assignees: client,
		Session:   store,
		Cache:     cache.NewBoardCache(database),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
