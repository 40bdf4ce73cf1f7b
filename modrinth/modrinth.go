package modrinth

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/unascribed/FlexVer/go/flexver"

	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/core"
)

// Fixed per-call network timeout; a timed-out registry call aborts the whole
// resolution run.
var mrHTTPClient = &http.Client{Timeout: 30 * time.Second}

var mrDefaultClient = modrinthApi.NewClient(mrHTTPClient)

func init() {
	mrDefaultClient.UserAgent = core.UserAgent
}

// Hosts recognised as canonical Modrinth project page hosts.
var canonicalHosts = []string{"modrinth.com", "www.modrinth.com"}

// NormalizeProjectURL validates a declared project URL and returns its
// canonical form https://modrinth.com/project/<id>. Normalisation is
// idempotent.
func NormalizeProjectURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &core.InvalidReferenceError{URL: raw, Reason: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &core.InvalidReferenceError{URL: raw, Reason: "scheme must be http or https"}
	}
	if !slices.Contains(canonicalHosts, parsed.Host) {
		return "", &core.InvalidReferenceError{URL: raw, Reason: "unsupported host"}
	}
	parts := splitPath(parsed.Path)
	if len(parts) != 2 || parts[0] != "project" {
		return "", &core.InvalidReferenceError{URL: raw, Reason: "path must be project/<id>"}
	}
	return "https://modrinth.com/project/" + parts[1], nil
}

// ParseProjectID extracts the project id from an already-normalised project
// URL, for use as the registry query key.
func ParseProjectID(normalized string) (string, error) {
	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", &core.InvalidReferenceError{URL: normalized, Reason: err.Error()}
	}
	parts := splitPath(parsed.Path)
	if len(parts) != 2 || parts[0] != "project" {
		return "", &core.InvalidReferenceError{URL: normalized, Reason: "path must be project/<id>"}
	}
	return parts[1], nil
}

func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// listVersions queries every version of a project. Transport failures are
// translated to RegistryError at this boundary; the pipeline never retries.
func listVersions(projectID string) ([]*modrinthApi.Version, error) {
	result, err := mrDefaultClient.Versions.ListVersions(projectID, modrinthApi.ListVersionsOptions{})
	if err != nil {
		return nil, &core.RegistryError{ProjectID: projectID, Err: err}
	}
	return result, nil
}

// filterVersions keeps versions compatible with the pack: either no declared
// game version constraint or gameVersion among them, and, when loader is
// non-empty, that loader among the version's loaders. Resource and shader
// packs pass an empty loader since they don't filter by loader.
func filterVersions(versions []*modrinthApi.Version, gameVersion string, loader string) []*modrinthApi.Version {
	filtered := make([]*modrinthApi.Version, 0, len(versions))
	for _, v := range versions {
		if len(v.GameVersions) > 0 && !slices.Contains(v.GameVersions, gameVersion) {
			continue
		}
		if loader != "" && !slices.Contains(v.Loaders, loader) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func publishedAt(v *modrinthApi.Version) time.Time {
	if v.DatePublished == nil {
		return time.Time{}
	}
	return *v.DatePublished
}

func versionNumber(v *modrinthApi.Version) string {
	if v.VersionNumber == nil {
		return ""
	}
	return *v.VersionNumber
}

// findLatestVersion returns the most recently published version. Ties keep
// the earliest input element, so selection is deterministic for a fixed
// registry response ordering.
func findLatestVersion(versions []*modrinthApi.Version) *modrinthApi.Version {
	latest := versions[0]
	for _, v := range versions[1:] {
		if publishedAt(v).After(publishedAt(latest)) {
			latest = v
		}
	}
	return latest
}

// findLatestVersionNumber applies FlexVer ordering to version numbers. Only
// used to warn when it disagrees with publish-date ordering; it never
// influences the selection.
func findLatestVersionNumber(versions []*modrinthApi.Version) *modrinthApi.Version {
	latest := versions[0]
	for _, v := range versions[1:] {
		if v.VersionNumber == nil {
			continue
		}
		if latest.VersionNumber == nil || flexver.Compare(*v.VersionNumber, *latest.VersionNumber) > 0 {
			latest = v
		}
	}
	return latest
}

// selectVersion picks exactly one version from an already-filtered list: the
// pinned version_number when a pin is set, otherwise the most recently
// published.
func selectVersion(versions []*modrinthApi.Version, projectID string, gameVersion string, loader string, pin string) (*modrinthApi.Version, error) {
	if len(versions) == 0 {
		return nil, &core.NoMatchingVersionError{ProjectID: projectID, GameVersion: gameVersion, Loader: loader, Pin: pin}
	}

	if pin != "" {
		matched := make([]*modrinthApi.Version, 0, 1)
		for _, v := range versions {
			if versionNumber(v) == pin {
				matched = append(matched, v)
			}
		}
		if len(matched) == 0 {
			return nil, &core.NoMatchingVersionError{ProjectID: projectID, GameVersion: gameVersion, Loader: loader, Pin: pin}
		}
		// Several versions sharing one version_number is registry
		// inconsistency; take the most recently published of them.
		return findLatestVersion(matched), nil
	}

	latest := findLatestVersion(versions)
	byNumber := findLatestVersionNumber(versions)
	if byNumber != latest && versionNumber(byNumber) != versionNumber(latest) && byNumber.VersionNumber != nil && latest.VersionNumber != nil {
		fmt.Printf("Warning: Modrinth versions for %s inconsistent between latest version number and newest release date (%s vs %s)\n",
			projectID, *byNumber.VersionNumber, *latest.VersionNumber)
	}
	return latest, nil
}

// selectFile picks the distributable file of a version: the primary-flagged
// file if one exists, else the first listed.
func selectFile(v *modrinthApi.Version, projectID string) (*modrinthApi.File, error) {
	if len(v.Files) == 0 {
		return nil, &core.NoFilesError{ProjectID: projectID, VersionNumber: versionNumber(v)}
	}
	for _, file := range v.Files {
		if file.Primary != nil && *file.Primary {
			return file, nil
		}
	}
	return v.Files[0], nil
}

// buildLockEntry extracts the canonical lock fields from a registry file,
// keeping only the sha1/sha512 hashes the pack format understands.
func buildLockEntry(file *modrinthApi.File, side string, projectID string) (core.LockEntry, error) {
	if file.Filename == nil || *file.Filename == "" {
		return core.LockEntry{}, &core.IncompleteFileError{ProjectID: projectID, Reason: "missing filename"}
	}
	if file.URL == nil || *file.URL == "" {
		return core.LockEntry{}, &core.IncompleteFileError{ProjectID: projectID, Reason: "missing download URL"}
	}
	if file.Size == nil || *file.Size == 0 {
		return core.LockEntry{}, &core.IncompleteFileError{ProjectID: projectID, Reason: "missing or invalid file size"}
	}

	hashes := make(map[string]string)
	for _, algorithm := range []string{"sha1", "sha512"} {
		if value, ok := file.Hashes[algorithm]; ok && value != "" {
			hashes[algorithm] = value
		}
	}
	if len(hashes) == 0 {
		return core.LockEntry{}, &core.IncompleteFileError{ProjectID: projectID, Reason: "no sha1/sha512 hash provided"}
	}

	// Modrinth index URLs must be RFC3986
	downloadURL, err := core.ReencodeURL(*file.URL)
	if err != nil {
		return core.LockEntry{}, &core.IncompleteFileError{ProjectID: projectID, Reason: err.Error()}
	}

	return core.LockEntry{
		Filename:  *file.Filename,
		Side:      side,
		Downloads: []string{downloadURL},
		Hashes:    hashes,
		FileSize:  uint64(*file.Size),
	}, nil
}
