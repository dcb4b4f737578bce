package curseforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/packwiz/serverpack/cmd"
	"github.com/spf13/cobra"
)

var searchLimit int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [search term]",
	Short: "List modpacks matching a search term",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		found, err := cmdSearch(cmd.Context(), os.Stdout, strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !found {
			os.Exit(1)
		}
	},
}

func cmdSearch(ctx context.Context, out io.Writer, term string) (bool, error) {
	client, err := newClientFromConfig()
	if err != nil {
		return false, err
	}
	results, err := client.Search(ctx, term, searchLimit)
	if err != nil {
		return false, err
	}
	printSearchResults(out, results)
	return len(results) > 0, nil
}

func printSearchResults(out io.Writer, results []Project) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "There were no packs matching the search term.")
		return
	}
	for i, v := range results {
		serverPacks := 0
		for _, f := range v.LatestFiles {
			if f.HasServerPack() {
				serverPacks++
			}
		}
		_, _ = fmt.Fprintf(out, "%d: %s (%d)\n", i+1, v.Name, v.ID)
		if v.Summary != "" {
			_, _ = fmt.Fprintf(out, "   %s\n", v.Summary)
		}
		_, _ = fmt.Fprintf(out, "   %d latest files, %d with a server pack\n", len(v.LatestFiles), serverPacks)
	}
}

func init() {
	cmd.Add(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Max amount of search results to list")
}
