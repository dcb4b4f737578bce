package curseforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/packwiz/serverpack/cmd"
	"github.com/packwiz/serverpack/cmdshared"
	"github.com/packwiz/serverpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	downloadOutput      string
	downloadGameVersion string
	downloadFilePattern string
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:     "download [search term]",
	Short:   "Search for a modpack and download the server pack of one of its files",
	Aliases: []string{"get", "dl"},
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outcome, err := cmdDownload(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if code := outcome.ExitCode(); code != 0 {
			os.Exit(code)
		}
	},
}

func cmdDownload(ctx context.Context, term string) (Outcome, error) {
	cfg := cmd.Config()
	client, err := newClientFromConfig()
	if err != nil {
		return 0, err
	}

	output := downloadOutput
	if output != "" {
		// The filesystem below refuses paths leaving the working directory unless they are absolute
		output, err = filepath.Abs(output)
		if err != nil {
			return 0, fmt.Errorf("invalid output path %s: %w", downloadOutput, err)
		}
	}

	fs := osfs.New("")
	flow := ServerPackFlow{
		API: client,
		Downloader: core.NewDownloader(
			core.WithDownloadHTTPClient(client.HTTPClient()),
			core.WithFilesystem(fs),
			core.WithDownloadLogger(cmd.Logger()),
		),
		Chooser: cmdshared.NewChooser(cfg.NonInteractive, cfg.Attempts),
		FS:      fs,
		Out:     os.Stdout,
	}
	res, err := flow.Run(ctx, FlowOptions{
		Term:        term,
		PageSize:    cfg.Max,
		Output:      output,
		GameVersion: downloadGameVersion,
		FilePattern: downloadFilePattern,
	})
	if err != nil {
		return res.Outcome, err
	}
	cmd.Logger().Debug("download finished", "outcome", res.Outcome.String(), "project", res.Project.ID, "file", res.File.ID)
	return res.Outcome, nil
}

func init() {
	cmd.Add(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "The output file (defaults to the name in the download URL)")
	downloadCmd.Flags().IntP("max", "m", 1, "Max amount of search results to show")
	_ = viper.BindPFlag("max", downloadCmd.Flags().Lookup("max"))
	downloadCmd.Flags().Int("attempts", 0, "Give up after this many invalid selections (0 to keep asking)")
	_ = viper.BindPFlag("attempts", downloadCmd.Flags().Lookup("attempts"))
	downloadCmd.Flags().StringVar(&downloadGameVersion, "mc-version", "", "Only list files for Minecraft versions matching this (e.g. 1.16.5 or \">=1.18 <1.20\")")
	downloadCmd.Flags().StringVar(&downloadFilePattern, "file", "", "Pick the file whose name best matches this instead of asking")
}
