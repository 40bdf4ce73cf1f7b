package modrinth

import (
	"fmt"

	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/core"
)

// ValidateReferences checks every declared project URL without touching the
// registry, so a malformed URL surfaces before any artifact is written even
// when its category is not being resolved.
func ValidateReferences(refs []core.Reference) error {
	for _, ref := range refs {
		if _, err := NormalizeProjectURL(ref.URL); err != nil {
			return err
		}
	}
	return nil
}

// ResolveEntries resolves the declared references of one category into lock
// entries, strictly in declaration order. Registry latency is taken
// sequentially so console output and error attribution stay deterministic
// across reruns. The returned list is sorted by case-insensitive filename,
// ready to persist.
func ResolveEntries(refs []core.Reference, gameVersion string, loader string, label string) ([]core.LockEntry, error) {
	resolved := make([]core.LockEntry, 0, len(refs))
	seen := make(map[string]string, len(refs))

	for i, ref := range refs {
		normalized, err := NormalizeProjectURL(ref.URL)
		if err != nil {
			return nil, err
		}
		projectID, err := ParseProjectID(normalized)
		if err != nil {
			return nil, err
		}

		versions, err := listVersions(projectID)
		if err != nil {
			return nil, err
		}
		filtered := filterVersions(versions, gameVersion, loader)
		selected, err := selectVersion(filtered, projectID, gameVersion, loader, ref.Version)
		if err != nil {
			return nil, err
		}
		file, err := selectFile(selected, projectID)
		if err != nil {
			return nil, err
		}
		entry, err := buildLockEntry(file, ref.Side, projectID)
		if err != nil {
			return nil, err
		}

		// A silent overwrite would make the manifest non-reproducible and
		// leave the package build ambiguous about which side applies.
		if firstURL, ok := seen[entry.Filename]; ok {
			return nil, &core.DuplicateFilenameError{
				Category: label,
				Filename: entry.Filename,
				First:    firstURL,
				Second:   normalized,
			}
		}
		seen[entry.Filename] = normalized
		resolved = append(resolved, entry)

		fmt.Printf("Resolved %s[%d]: %s -> %s\n", label, i, normalized, entry.Filename)
	}

	core.SortEntries(resolved)
	return resolved, nil
}
