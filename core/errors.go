package core

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed or invalid pack declaration. Path names the
// exact offending key, e.g. "mods.gameplay.mods[3].side", so the failing
// declaration can be located without re-parsing the file.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid pack declaration: %s: %s", e.Path, e.Reason)
}

// InvalidReferenceError reports a project URL that does not resolve to a
// canonical Modrinth project page.
type InvalidReferenceError struct {
	URL    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid project URL %q: %s", e.URL, e.Reason)
}

// RegistryError wraps a network or HTTP failure from the Modrinth API. The
// rest of the pipeline never inspects transport-level detail; a registry
// failure aborts the whole resolution run.
type RegistryError struct {
	ProjectID string
	Err       error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("modrinth request for project %q failed: %v", e.ProjectID, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// NoMatchingVersionError reports that no registry version survives
// compatibility filtering (or pin lookup) for a project.
type NoMatchingVersionError struct {
	ProjectID   string
	GameVersion string
	Loader      string
	Pin         string
}

func (e *NoMatchingVersionError) Error() string {
	constraint := "minecraft " + e.GameVersion
	if e.Loader != "" {
		constraint += ", loader " + e.Loader
	}
	if e.Pin != "" {
		return fmt.Sprintf("no compatible version_number=%q of project %q found (%s)", e.Pin, e.ProjectID, constraint)
	}
	return fmt.Sprintf("no compatible versions of project %q found (%s)", e.ProjectID, constraint)
}

// NoFilesError reports a selected version with no distributable file.
type NoFilesError struct {
	ProjectID     string
	VersionNumber string
}

func (e *NoFilesError) Error() string {
	return fmt.Sprintf("selected version %q of project %q has no files", e.VersionNumber, e.ProjectID)
}

// IncompleteFileError reports a registry file missing a field the lock entry
// requires (filename, URL, size or a sha1/sha512 hash).
type IncompleteFileError struct {
	ProjectID string
	Reason    string
}

func (e *IncompleteFileError) Error() string {
	return fmt.Sprintf("file data for project %q is incomplete: %s", e.ProjectID, e.Reason)
}

// DuplicateFilenameError reports two references in one category resolving to
// the same filename. Both source references are named; a silent overwrite
// would make the manifest non-reproducible.
type DuplicateFilenameError struct {
	Category string
	Filename string
	First    string
	Second   string
}

func (e *DuplicateFilenameError) Error() string {
	return fmt.Sprintf("duplicate resolved filename %q in %s (%s and %s); this is ambiguous",
		e.Filename, e.Category, e.First, e.Second)
}

// MissingArtifactError reports an input file named by a CLI invocation that
// does not exist.
type MissingArtifactError struct {
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("required file not found: %s", e.Path)
}

// SchemaError reports a lock manifest or template file that is structurally
// invalid. Path names the file, optionally qualified with the entry and
// field, e.g. "mods.lock.json[2].side".
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// joinKeys formats a list of missing keys for SchemaError reasons.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
