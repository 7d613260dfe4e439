package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sdeneef/discodash/internal/config"
	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "import":
		if err := runImport(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runImport performs one full import from the command line and exits.
func runImport() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := entrypoint.BuildImporter(cfg, db).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d collection items, %d wantlist items, %d genres, %d styles\n",
		summary.CollectionItems, summary.WantlistItems, summary.Genres, summary.Styles)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve   Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import  Run one full Discogs import and exit\n")
}
