package curseforge

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"
	"github.com/unascribed/FlexVer/go/flexver"
	"golang.org/x/exp/slices"
)

// filterByGameVersion keeps the files supporting a game version matched by filter.
// The filter is a semver constraint (">=1.18 <1.20", "1.16.x"); anything that does not parse as one
// is compared verbatim, so loader tags like "Forge" also work.
func filterByGameVersion(files []FileSummary, filter string) []FileSummary {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return files
	}

	constraint, err := semver.NewConstraint(filter)
	matches := func(gameVersion string) bool {
		if gameVersion == filter {
			return true
		}
		if err != nil {
			return false
		}
		v, verr := semver.NewVersion(gameVersion)
		return verr == nil && constraint.Check(v)
	}

	filtered := make([]FileSummary, 0, len(files))
	for _, f := range files {
		if slices.ContainsFunc(f.GameVersion, matches) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// sortedGameVersions returns a copy of versions, newest first
func sortedGameVersions(versions []string) []string {
	sorted := slices.Clone(versions)
	slices.SortStableFunc(sorted, func(a, b string) int {
		if flexver.Less(b, a) {
			return -1
		}
		if flexver.Less(a, b) {
			return 1
		}
		return 0
	})
	return sorted
}

// matchFile returns the index of the file whose display or file name best matches pattern, or -1
func matchFile(files []FileSummary, pattern string) int {
	names := make([]string, 0, len(files)*2)
	for _, f := range files {
		names = append(names, f.DisplayName, f.FileName)
	}
	found := fuzzy.Find(pattern, names)
	if len(found) == 0 {
		return -1
	}
	return found[0].Index / 2
}

// describeFile is how a file is listed when choosing
func describeFile(f FileSummary) string {
	var b strings.Builder
	b.WriteString(f.FileName)
	if f.DisplayName != "" && f.DisplayName != f.FileName {
		b.WriteString(" (")
		b.WriteString(f.DisplayName)
		b.WriteString(")")
	}
	b.WriteString(" [")
	b.WriteString(f.ReleaseType.String())
	if len(f.GameVersion) > 0 {
		b.WriteString(", ")
		b.WriteString(strings.Join(sortedGameVersions(f.GameVersion), ", "))
	}
	b.WriteString("]")
	if !f.HasServerPack() {
		b.WriteString(" (no server pack)")
	}
	return b.String()
}
