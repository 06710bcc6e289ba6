package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/commands"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{Version: version}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/opt/etc/mikrotik-addresslist/mikrotik-addresslist.conf", "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mikrotik RouterOS Address-List Script Generator\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  generate-script         Generate a RouterOS address-list script from a local file or URL\n")
		fmt.Fprintf(os.Stderr, "  server                  Serve the configured scripts over HTTP\n")
		fmt.Fprintf(os.Stderr, "  check-config            Validate the configuration file\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateGenerateScriptCommand(),
		commands.CreateServerCommand(),
		commands.CreateCheckConfigCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
