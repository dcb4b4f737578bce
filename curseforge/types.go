package curseforge

import (
	"strconv"

	"github.com/packwiz/serverpack/core"
)

// ReleaseType is the upstream release classification of a file. Only 1-3 are known; other values are kept as-is.
type ReleaseType int64

// noinspection GoUnusedConst
const (
	ReleaseTypeRelease ReleaseType = iota + 1
	ReleaseTypeBeta
	ReleaseTypeAlpha
)

func (r ReleaseType) String() string {
	switch r {
	case ReleaseTypeRelease:
		return "release"
	case ReleaseTypeBeta:
		return "beta"
	case ReleaseTypeAlpha:
		return "alpha"
	}
	return strconv.FormatInt(int64(r), 10)
}

// Project is the deserialised JSON response from the addon API for a project (mod or modpack)
type Project struct {
	ID                     int64                   `json:"id"`
	Name                   string                  `json:"name"`
	Authors                []Author                `json:"authors"`
	Attachments            []Attachment            `json:"attachments"`
	WebsiteURL             string                  `json:"websiteUrl"`
	GameID                 int64                   `json:"gameId"`
	Summary                string                  `json:"summary"`
	DefaultFileID          int64                   `json:"defaultFileId"`
	DownloadCount          float64                 `json:"downloadCount"`
	LatestFiles            []FileSummary           `json:"latestFiles"`
	Categories             []Category              `json:"categories"`
	Status                 int64                   `json:"status"`
	PrimaryCategoryID      int64                   `json:"primaryCategoryId"`
	CategorySection        CategorySection         `json:"categorySection"`
	Slug                   string                  `json:"slug"`
	GameVersionLatestFiles []GameVersionLatestFile `json:"gameVersionLatestFiles"`
	IsFeatured             bool                    `json:"isFeatured"`
	PopularityScore        float64                 `json:"popularityScore"`
	GamePopularityRank     int64                   `json:"gamePopularityRank"`
	PrimaryLanguage        string                  `json:"primaryLanguage"`
	GameSlug               string                  `json:"gameSlug"`
	GameName               string                  `json:"gameName"`
	PortalName             string                  `json:"portalName"`
	DateModified           string                  `json:"dateModified"`
	DateCreated            string                  `json:"dateCreated"`
	DateReleased           string                  `json:"dateReleased"`
	IsAvailable            bool                    `json:"isAvailable"`
	// Misspelt upstream
	IsExperimental bool `json:"isExperiemental"`
}

type Author struct {
	Name              string  `json:"name"`
	URL               string  `json:"url"`
	ProjectID         int64   `json:"projectId"`
	ID                int64   `json:"id"`
	ProjectTitleID    *int64  `json:"projectTitleId"`
	ProjectTitleTitle *string `json:"projectTitleTitle"`
	UserID            int64   `json:"userId"`
	TwitchID          int64   `json:"twitchId"`
}

type Attachment struct {
	ID           int64  `json:"id"`
	ProjectID    int64  `json:"projectId"`
	Description  string `json:"description"`
	IsDefault    bool   `json:"isDefault"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Status       int64  `json:"status"`
}

// FileSummary is one entry of a project's latestFiles
type FileSummary struct {
	ID                        int64                 `json:"id"`
	DisplayName               string                `json:"displayName"`
	FileName                  string                `json:"fileName"`
	FileDate                  string                `json:"fileDate"`
	FileLength                int64                 `json:"fileLength"`
	ReleaseType               ReleaseType           `json:"releaseType"`
	FileStatus                int64                 `json:"fileStatus"`
	DownloadURL               string                `json:"downloadUrl"`
	IsAlternate               bool                  `json:"isAlternate"`
	AlternateFileID           int64                 `json:"alternateFileId"`
	Dependencies              []core.Value          `json:"dependencies"`
	IsAvailable               bool                  `json:"isAvailable"`
	Modules                   []Module              `json:"modules"`
	PackageFingerprint        int64                 `json:"packageFingerprint"`
	GameVersion               []string              `json:"gameVersion"`
	SortableGameVersion       []SortableGameVersion `json:"sortableGameVersion"`
	InstallMetadata           core.Value            `json:"installMetadata"`
	Changelog                 core.Value            `json:"changelog"`
	HasInstallScript          bool                  `json:"hasInstallScript"`
	IsCompatibleWithClient    bool                  `json:"isCompatibleWithClient"`
	CategorySectionPackage    int64                 `json:"categorySectionPackageType"`
	RestrictProjectFileAccess int64                 `json:"restrictProjectFileAccess"`
	ProjectStatus             int64                 `json:"projectStatus"`
	RenderCacheID             int64                 `json:"renderCacheId"`
	FileLegacyMappingID       core.Value            `json:"fileLegacyMappingId"`
	ProjectID                 int64                 `json:"projectId"`
	ParentProjectFileID       core.Value            `json:"parentProjectFileId"`
	ParentFileLegacyMappingID core.Value            `json:"parentFileLegacyMappingId"`
	FileTypeID                core.Value            `json:"fileTypeId"`
	ExposeAsAlternative       core.Value            `json:"exposeAsAlternative"`
	PackageFingerprintID      int64                 `json:"packageFingerprintId"`
	GameVersionDateReleased   string                `json:"gameVersionDateReleased"`
	GameVersionMappingID      int64                 `json:"gameVersionMappingId"`
	GameVersionID             int64                 `json:"gameVersionId"`
	GameID                    int64                 `json:"gameId"`
	IsServerPack              bool                  `json:"isServerPack"`
	ServerPackFileID          *int64                `json:"serverPackFileId"`
	GameVersionFlavor         core.Value            `json:"gameVersionFlavor"`
}

// HasServerPack reports whether this file has a companion server pack that can be downloaded
func (f FileSummary) HasServerPack() bool {
	return f.ServerPackFileID != nil
}

type Module struct {
	FolderName  string `json:"foldername"`
	Fingerprint int64  `json:"fingerprint"`
	Type        int64  `json:"type"`
}

type SortableGameVersion struct {
	GameVersionPadded      string `json:"gameVersionPadded"`
	GameVersion            string `json:"gameVersion"`
	GameVersionReleaseDate string `json:"gameVersionReleaseDate"`
	GameVersionName        string `json:"gameVersionName"`
}

type Category struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	AvatarURL  string `json:"avatarUrl"`
	ParentID   int64  `json:"parentId"`
	RootID     int64  `json:"rootId"`
	ProjectID  int64  `json:"projectId"`
	AvatarID   int64  `json:"avatarId"`
	GameID     int64  `json:"gameId"`
}

type CategorySection struct {
	ID                      int64      `json:"id"`
	GameID                  int64      `json:"gameId"`
	Name                    string     `json:"name"`
	PackageType             int64      `json:"packageType"`
	Path                    string     `json:"path"`
	InitialInclusionPattern string     `json:"initialInclusionPattern"`
	ExtraIncludePattern     core.Value `json:"extraIncludePattern"`
	GameCategoryID          int64      `json:"gameCategoryId"`
}

type GameVersionLatestFile struct {
	GameVersion     string `json:"gameVersion"`
	ProjectFileID   int64  `json:"projectFileId"`
	ProjectFileName string `json:"projectFileName"`
	FileType        int64  `json:"fileType"`
}

// FileDetail is the deserialised JSON response from the addon API for a single file
type FileDetail struct {
	ID                      int64        `json:"id"`
	DisplayName             string       `json:"displayName"`
	FileName                string       `json:"fileName"`
	FileDate                string       `json:"fileDate"`
	FileLength              int64        `json:"fileLength"`
	ReleaseType             ReleaseType  `json:"releaseType"`
	FileStatus              int64        `json:"fileStatus"`
	DownloadURL             string       `json:"downloadUrl"`
	IsAlternate             bool         `json:"isAlternate"`
	AlternateFileID         int64        `json:"alternateFileId"`
	Dependencies            []core.Value `json:"dependencies"`
	IsAvailable             bool         `json:"isAvailable"`
	Modules                 []FileModule `json:"modules"`
	PackageFingerprint      int64        `json:"packageFingerprint"`
	GameVersion             []string     `json:"gameVersion"`
	InstallMetadata         core.Value   `json:"installMetadata"`
	ServerPackFileID        *int64       `json:"serverPackFileId"`
	HasInstallScript        bool         `json:"hasInstallScript"`
	GameVersionDateReleased string       `json:"gameVersionDateReleased"`
	GameVersionFlavor       core.Value   `json:"gameVersionFlavor"`
}

func (f FileDetail) HasServerPack() bool {
	return f.ServerPackFileID != nil
}

type FileModule struct {
	FolderName  string `json:"foldername"`
	Fingerprint int64  `json:"fingerprint"`
}
