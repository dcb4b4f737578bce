package curseforge

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/packwiz/serverpack/cmd"
)

var fileIDRegexes = [...]*regexp.Regexp{
	regexp.MustCompile("^https?://minecraft\\.curseforge\\.com/projects/([^/]+)/files/(\\d+)"),
	regexp.MustCompile("^https?://(?:www\\.)?curseforge\\.com/minecraft/modpacks/([^/]+)/files/(\\d+)"),
	regexp.MustCompile("^https?://(?:www\\.)?curseforge\\.com/minecraft/modpacks/([^/]+)/download/(\\d+)"),
}

var projectSlugRegexes = [...]*regexp.Regexp{
	regexp.MustCompile("^https?://minecraft\\.curseforge\\.com/projects/([^/?#]+)"),
	regexp.MustCompile("^https?://(?:www\\.)?curseforge\\.com/minecraft/modpacks/([^/?#]+)"),
	// Exact slug matcher
	regexp.MustCompile("^[a-z][\\da-z\\-]{0,127}$"),
}

// projectRef is a parsed project argument: either an ID or a slug to look up, plus an optional file ID
type projectRef struct {
	ID     int64
	Slug   string
	FileID int64
}

func parseProjectRef(arg string) (projectRef, error) {
	// Check if it's just a number first
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return projectRef{ID: id}, nil
	}

	for _, v := range fileIDRegexes {
		matches := v.FindStringSubmatch(arg)
		if len(matches) == 3 {
			fileID, err := strconv.ParseInt(matches[2], 10, 64)
			if err != nil {
				return projectRef{}, err
			}
			return projectRef{Slug: matches[1], FileID: fileID}, nil
		}
	}

	for _, v := range projectSlugRegexes {
		matches := v.FindStringSubmatch(arg)
		if matches == nil {
			continue
		}
		if len(matches) == 2 {
			return projectRef{Slug: matches[1]}, nil
		}
		return projectRef{Slug: matches[0]}, nil
	}
	return projectRef{}, fmt.Errorf("%q is not a CurseForge project ID, URL or slug", arg)
}

// resolveProject fetches the project ref points to; slugs are looked up through the search endpoint
func resolveProject(ctx context.Context, client *Client, ref projectRef) (Project, error) {
	if ref.ID != 0 {
		return client.GetProject(ctx, ref.ID)
	}
	results, err := client.Search(ctx, ref.Slug, 20)
	if err != nil {
		return Project{}, err
	}
	for _, v := range results {
		if v.Slug == ref.Slug {
			return v, nil
		}
	}
	return Project{}, fmt.Errorf("no modpack found with the slug %q", ref.Slug)
}

// newClientFromConfig builds the API client for a command run
func newClientFromConfig() (*Client, error) {
	return NewClient(WithConfig(cmd.Config()), WithLogger(cmd.Logger()))
}
