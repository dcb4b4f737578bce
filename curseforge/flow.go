package curseforge

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/packwiz/serverpack/cmdshared"
	"github.com/packwiz/serverpack/core"
)

// Outcome is how a ServerPackFlow run ended when nothing went wrong
type Outcome int

const (
	OutcomeDownloaded Outcome = iota
	OutcomeNoResults
	OutcomeNoFiles
	OutcomeNoServerPack
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeNoResults:
		return "no results"
	case OutcomeNoFiles:
		return "no files"
	case OutcomeNoServerPack:
		return "no server pack"
	case OutcomeCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ExitCode is the process exit status for the outcome
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeNoResults, OutcomeNoFiles:
		return 1
	}
	return 0
}

// PackAPI is the part of Client the flow needs
type PackAPI interface {
	Search(ctx context.Context, term string, pageSize int) ([]Project, error)
	ResolveDownloadURL(ctx context.Context, projectID int64, fileID int64) (string, error)
}

// FileDownloader is satisfied by *core.Downloader
type FileDownloader interface {
	Download(ctx context.Context, url string, dest string, onProgress core.ProgressFunc) (int64, error)
}

// FlowOptions are the per-run inputs of a ServerPackFlow
type FlowOptions struct {
	Term     string
	PageSize int
	// Output overrides the file name taken from the download URL
	Output      string
	GameVersion string
	FilePattern string
}

// FlowResult describes what a run did. Fields past Outcome are filled in as far as the run got.
type FlowResult struct {
	Outcome Outcome
	Project Project
	File    FileSummary
	URL     string
	Path    string
	Size    int64
}

// ServerPackFlow searches for a modpack, lets the operator pick a pack and file, and downloads its server pack
type ServerPackFlow struct {
	API        PackAPI
	Downloader FileDownloader
	Chooser    cmdshared.Chooser
	// FS is checked for an existing file at the destination; it should be the one Downloader writes to
	FS  billy.Filesystem
	Out io.Writer
	// NewProgress defaults to core.NewProgress on Out
	NewProgress func(ctx context.Context, name string) core.Progress
}

func (f *ServerPackFlow) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(f.Out, format, a...)
}

func (f *ServerPackFlow) Run(ctx context.Context, opts FlowOptions) (FlowResult, error) {
	var res FlowResult

	f.printf("Searching CurseForge...\n")
	packs, err := f.API.Search(ctx, opts.Term, opts.PageSize)
	if err != nil {
		return res, err
	}

	switch len(packs) {
	case 0:
		f.printf("There were no packs matching the search term.\n")
		res.Outcome = OutcomeNoResults
		return res, nil
	case 1:
		res.Project = packs[0]
	default:
		names := make([]string, len(packs))
		for i, v := range packs {
			names[i] = v.Name
		}
		i, err := f.Chooser.Choose("Please pick the pack you want.", names)
		if err != nil {
			return res, err
		}
		res.Project = packs[i]
	}
	f.printf("Selected %s (%d)\n", res.Project.Name, res.Project.ID)

	files := filterByGameVersion(res.Project.LatestFiles, opts.GameVersion)
	if len(files) == 0 {
		if opts.GameVersion != "" {
			f.printf("%s has no files for game version %s.\n", res.Project.Name, opts.GameVersion)
		} else {
			f.printf("%s has no files.\n", res.Project.Name)
		}
		res.Outcome = OutcomeNoFiles
		return res, nil
	}

	if opts.FilePattern != "" {
		i := matchFile(files, opts.FilePattern)
		if i < 0 {
			f.printf("No file of %s matches %q.\n", res.Project.Name, opts.FilePattern)
			res.Outcome = OutcomeNoFiles
			return res, nil
		}
		res.File = files[i]
	} else {
		descs := make([]string, len(files))
		for i, v := range files {
			descs[i] = describeFile(v)
		}
		i, err := f.Chooser.Choose("Please pick the client pack you would like the server pack for.", descs)
		if err != nil {
			return res, err
		}
		res.File = files[i]
	}

	if !res.File.HasServerPack() {
		f.printf("No server pack available for this version.\n")
		res.Outcome = OutcomeNoServerPack
		return res, nil
	}

	res.URL, err = f.API.ResolveDownloadURL(ctx, res.Project.ID, *res.File.ServerPackFileID)
	if err != nil {
		return res, err
	}

	res.Path = opts.Output
	if res.Path == "" {
		res.Path = core.DefaultFileName(res.URL)
	}
	if f.FS != nil {
		if _, err := f.FS.Stat(res.Path); err == nil {
			ok, err := f.Chooser.Confirm(fmt.Sprintf("File `%s` already exists, overwrite it? [Y/n] ", res.Path))
			if err != nil {
				return res, err
			}
			if !ok {
				f.printf("Download cancelled.\n")
				res.Outcome = OutcomeCancelled
				return res, nil
			}
		}
	}

	f.printf("Downloading server file `%s` from `%s`.\n", res.Path, res.URL)
	newProgress := f.NewProgress
	if newProgress == nil {
		newProgress = func(ctx context.Context, name string) core.Progress {
			return core.NewProgress(ctx, f.Out, name)
		}
	}
	progress := newProgress(ctx, filepath.Base(res.Path))
	res.Size, err = f.Downloader.Download(ctx, res.URL, res.Path, progress.Update)
	progress.Finish(err == nil)
	if err != nil {
		return res, err
	}

	f.printf("Downloaded %s to %s (%d bytes)\n", res.URL, res.Path, res.Size)
	res.Outcome = OutcomeDownloaded
	return res, nil
}
