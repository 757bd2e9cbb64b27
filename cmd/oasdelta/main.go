package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasdelta"
	"github.com/erraggy/oasdelta/cmd/oasdelta/commands"
)

var knownCommands = []string{"diff", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasdelta %s (commit %s, built %s, %s)\n",
			oasdelta.Version(), oasdelta.Commit(), oasdelta.BuildTime(), oasdelta.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "diff":
		err = commands.HandleDiff(os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	case "mcp":
		err = commands.HandleMCP(os.Args[2:], os.Stderr)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	switch {
	case err == nil:
	case errors.Is(err, commands.ErrDifferences):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// suggestCommand returns the known command closest to input when it is
// within edit distance 2, otherwise "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasdelta - semantic diff for OpenAPI documents

Usage:
  oasdelta <command> [options]

Commands:
  diff        Compare two OpenAPI documents, detecting renamed schemas
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasdelta diff api-v1.yaml api-v2.yaml
  oasdelta diff --format markdown --detail verbose api-v1.yaml api-v2.yaml
  oasdelta diff --format json api-v1.yaml api-v2.yaml

Run 'oasdelta <command> --help' for more information on a command.`)
}
