package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/kobo-export/internal/cli"
	"github.com/mrlokans/kobo-export/internal/config"
	"github.com/mrlokans/kobo-export/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export":
		cmd := cli.NewExportCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "serve":
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  export  Export annotations and highlights from a KoboReader.sqlite file\n")
	fmt.Fprintf(os.Stderr, "  serve   Start the local read-only web viewer\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s export -h' for help on the export options.\n", os.Args[0])
}
