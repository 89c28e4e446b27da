package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("linear-saturation-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Parameter schema: v%d\n", params.Version)
			return
		case "--help", "-h", "help":
			fmt.Println("linear-saturation-mcp - MCP server for luminance-preserving linear saturation")
			fmt.Println()
			fmt.Println("Usage: linear-saturation-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  LINSAT_MCP_LOG_LEVEL=debug          Enable debug logging")
			fmt.Println("  LINSAT_MCP_WORK_PROFILE=<profile>   Default working profile (linear-rec2020)")
			fmt.Println()
			fmt.Println("Working profiles:")
			for _, name := range colorspace.Names() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("LINSAT_MCP_LOG_LEVEL") == "debug"

	profile := colorspace.LinearRec2020
	if name := os.Getenv("LINSAT_MCP_WORK_PROFILE"); name != "" {
		p, err := colorspace.ByName(name)
		if err != nil {
			log.Fatalf("Invalid LINSAT_MCP_WORK_PROFILE: %v", err)
		}
		profile = p
	}

	if debug {
		log.Printf("Linear Saturation MCP Server v%s (built %s, commit %s), working profile %s",
			Version, BuildTime, GitCommit, profile.Name)
	}

	srv := server.New(server.WithProfile(profile), server.WithDebug(debug))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
