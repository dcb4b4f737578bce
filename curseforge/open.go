package curseforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/packwiz/serverpack/cmd"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:     "open [project ID|URL|slug]",
	Short:   "Open the project page for a modpack in your browser",
	Aliases: []string{"doc"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args[0]) == 0 {
			fmt.Println("You must specify a modpack.")
			os.Exit(1)
		}
		if err := cmdOpen(cmd.Context(), os.Stdout, args[0], open.Start); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func cmdOpen(ctx context.Context, out io.Writer, arg string, start func(string) error) error {
	ref, err := parseProjectRef(arg)
	if err != nil {
		return err
	}

	var url string
	if ref.ID != 0 {
		// Numeric IDs don't need a lookup
		url = "https://www.curseforge.com/projects/" + strconv.FormatInt(ref.ID, 10)
	} else {
		client, err := newClientFromConfig()
		if err != nil {
			return err
		}
		project, err := resolveProject(ctx, client, ref)
		if err != nil {
			return err
		}
		url = project.WebsiteURL
		if url == "" {
			url = "https://www.curseforge.com/projects/" + strconv.FormatInt(project.ID, 10)
		}
	}

	_, _ = fmt.Fprintln(out, "Opening browser...")
	if err := start(url); err != nil {
		_, _ = fmt.Fprintln(out, "Opening page failed, direct link:")
		_, _ = fmt.Fprintln(out, url)
	}
	return nil
}

func init() {
	cmd.Add(openCmd)
}
