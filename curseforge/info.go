package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/packwiz/serverpack/cmd"
	"github.com/spf13/cobra"
)

var infoFormat string

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [project ID|URL|slug] [file ID]",
	Short: "Show the files of a modpack and whether they have a server pack",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := cmdInfo(cmd.Context(), os.Stdout, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// fileInfo is the condensed view of a file printed by info
type fileInfo struct {
	ID               int64    `json:"id" toml:"id"`
	DisplayName      string   `json:"displayName" toml:"display-name"`
	FileName         string   `json:"fileName" toml:"file-name"`
	FileDate         string   `json:"fileDate" toml:"file-date"`
	FileLength       int64    `json:"fileLength" toml:"file-length"`
	ReleaseType      string   `json:"releaseType" toml:"release-type"`
	GameVersions     []string `json:"gameVersions" toml:"game-versions"`
	ServerPackFileID int64    `json:"serverPackFileId,omitempty" toml:"server-pack-file-id,omitempty"`
	DownloadURL      string   `json:"downloadUrl" toml:"download-url"`
}

type projectInfo struct {
	ID            int64      `json:"id" toml:"id"`
	Name          string     `json:"name" toml:"name"`
	Slug          string     `json:"slug" toml:"slug"`
	Summary       string     `json:"summary" toml:"summary"`
	WebsiteURL    string     `json:"websiteUrl" toml:"website-url"`
	Authors       []string   `json:"authors" toml:"authors"`
	DownloadCount float64    `json:"downloadCount" toml:"download-count"`
	Files         []fileInfo `json:"files" toml:"files"`
}

func newFileInfo(id int64, displayName string, fileName string, fileDate string, length int64, releaseType ReleaseType, gameVersions []string, serverPackFileID *int64, downloadURL string) fileInfo {
	info := fileInfo{
		ID:           id,
		DisplayName:  displayName,
		FileName:     fileName,
		FileDate:     fileDate,
		FileLength:   length,
		ReleaseType:  releaseType.String(),
		GameVersions: sortedGameVersions(gameVersions),
		DownloadURL:  downloadURL,
	}
	if serverPackFileID != nil {
		info.ServerPackFileID = *serverPackFileID
	}
	return info
}

func fileSummaryInfo(f FileSummary) fileInfo {
	return newFileInfo(f.ID, f.DisplayName, f.FileName, f.FileDate, f.FileLength, f.ReleaseType, f.GameVersion, f.ServerPackFileID, f.DownloadURL)
}

func fileDetailInfo(f FileDetail) fileInfo {
	return newFileInfo(f.ID, f.DisplayName, f.FileName, f.FileDate, f.FileLength, f.ReleaseType, f.GameVersion, f.ServerPackFileID, f.DownloadURL)
}

func newProjectInfo(p Project) projectInfo {
	info := projectInfo{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Summary:       p.Summary,
		WebsiteURL:    p.WebsiteURL,
		DownloadCount: p.DownloadCount,
		Authors:       make([]string, 0, len(p.Authors)),
		Files:         make([]fileInfo, 0, len(p.LatestFiles)),
	}
	for _, a := range p.Authors {
		info.Authors = append(info.Authors, a.Name)
	}
	for _, f := range p.LatestFiles {
		info.Files = append(info.Files, fileSummaryInfo(f))
	}
	return info
}

func cmdInfo(ctx context.Context, out io.Writer, args []string) error {
	switch infoFormat {
	case "text", "json", "toml":
	default:
		return fmt.Errorf("unknown format %q (expected text, json or toml)", infoFormat)
	}

	ref, err := parseProjectRef(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		ref.FileID, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file ID %q: %w", args[1], err)
		}
	}

	client, err := newClientFromConfig()
	if err != nil {
		return err
	}
	record, info, err := lookupInfo(ctx, client, ref)
	if err != nil {
		return err
	}
	return printInfo(out, record, info)
}

// lookupInfo fetches the file detail when a file ID is given, and the project otherwise
func lookupInfo(ctx context.Context, client *Client, ref projectRef) (interface{}, interface{}, error) {
	projectID := ref.ID
	if projectID == 0 || ref.FileID == 0 {
		project, err := resolveProject(ctx, client, ref)
		if err != nil {
			return nil, nil, err
		}
		if ref.FileID == 0 {
			return project, newProjectInfo(project), nil
		}
		projectID = project.ID
	}

	file, err := client.GetFileDetail(ctx, projectID, ref.FileID)
	if err != nil {
		return nil, nil, err
	}
	return file, fileDetailInfo(file), nil
}

// printInfo writes the upstream record for json, and the condensed view otherwise
func printInfo(out io.Writer, record interface{}, info interface{}) error {
	switch infoFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	case "toml":
		return toml.NewEncoder(out).Encode(info)
	}

	switch v := info.(type) {
	case projectInfo:
		writeProjectText(out, v)
	case fileInfo:
		writeFileText(out, v, "")
	}
	return nil
}

func writeProjectText(out io.Writer, p projectInfo) {
	_, _ = fmt.Fprintf(out, "%s (%d)\n", p.Name, p.ID)
	if len(p.Authors) > 0 {
		_, _ = fmt.Fprintf(out, "By %s\n", strings.Join(p.Authors, ", "))
	}
	if p.Summary != "" {
		_, _ = fmt.Fprintln(out, p.Summary)
	}
	if p.WebsiteURL != "" {
		_, _ = fmt.Fprintln(out, p.WebsiteURL)
	}
	if len(p.Files) == 0 {
		_, _ = fmt.Fprintln(out, "No files.")
		return
	}
	_, _ = fmt.Fprintln(out, "Latest files:")
	for _, f := range p.Files {
		writeFileText(out, f, "  ")
	}
}

func writeFileText(out io.Writer, f fileInfo, indent string) {
	_, _ = fmt.Fprintf(out, "%s%s (%d) [%s]\n", indent, f.FileName, f.ID, f.ReleaseType)
	if len(f.GameVersions) > 0 {
		_, _ = fmt.Fprintf(out, "%s  Game versions: %s\n", indent, strings.Join(f.GameVersions, ", "))
	}
	if f.ServerPackFileID != 0 {
		_, _ = fmt.Fprintf(out, "%s  Server pack: %d\n", indent, f.ServerPackFileID)
	} else {
		_, _ = fmt.Fprintf(out, "%s  Server pack: none\n", indent)
	}
}

func init() {
	cmd.Add(infoCmd)

	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text", "Output format: text, json or toml")
}
