package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oastransform"
	"github.com/erraggy/oastransform/cmd/oastransform/commands"
	"github.com/erraggy/oastransform/internal/cliutil"
)

// commandNames lists the commands suggestCommand can propose.
var commandNames = []string{"transform", "watch", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "--version":
		fmt.Printf("oastransform v%s\n", oastransform.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "transform":
		err = commands.HandleTransform(args)
	case "watch":
		err = commands.HandleWatch(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oastransform - OpenAPI Specification Transformer

Usage:
  oastransform <command> [options]

Commands:
  transform   Apply the transformation rules to a specification and write JSON
  watch       Re-run transform every time the input specification changes
  mcp         Serve the transform tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Examples:
  oastransform transform openapi.yaml openapi.out.json
  oastransform transform --rules strip-extension swagger.json out.json
  oastransform watch openapi.yaml build/openapi.json

Run 'oastransform <command> --help' for more information on a command.`)
}
