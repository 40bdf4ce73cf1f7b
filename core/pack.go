package core

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// UserAgent identifies this tool to the Modrinth API.
const UserAgent = "CHUJ-Pack-Resolver"

// SupportedLoaders is the fixed set of mod loaders a pack may declare.
var SupportedLoaders = []string{"fabric", "forge", "quilt", "neoforge"}

// Pack stores the declarative modpack description, usually in
// modpack/pack.toml.
type Pack struct {
	Pack struct {
		Name         string `toml:"name"`
		Summary      string `toml:"summary"`
		DebugVersion string `toml:"debug_version"`
	} `toml:"pack"`
	Dependencies struct {
		Minecraft     string `toml:"minecraft"`
		Loader        string `toml:"loader"`
		LoaderVersion string `toml:"loader_version"`
	} `toml:"dependencies"`
	Mods          map[string]ModGroup  `toml:"mods"`
	ResourcePacks map[string]PackGroup `toml:"resourcepacks"`
	ShaderPacks   map[string]PackGroup `toml:"shaderpacks"`
	Build         BuildDefaults        `toml:"build"`

	// Group names per top-level table, in file order. Go maps lose the
	// declaration order that resolution and error attribution depend on.
	groupOrder map[string][]string
}

// ModGroup is a named group of mod references under [mods.<group>].
type ModGroup struct {
	Mods []Reference `toml:"mods"`
}

// PackGroup is a named group of resource pack or shader pack references.
type PackGroup struct {
	Packs []Reference `toml:"packs"`
}

// Reference declares one Modrinth project to resolve. Version, when set,
// pins the selection to that exact version_number.
type Reference struct {
	URL     string `toml:"url"`
	Side    string `toml:"side"`
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildDefaults is the optional [build] table with packaging defaults.
type BuildDefaults struct {
	Slug        string `toml:"slug"`
	DistDir     string `toml:"dist_dir"`
	DefaultSide string `toml:"default_side"`
}

// LoadPack reads and validates the modpack declaration.
func LoadPack(packFile string) (Pack, error) {
	var pack Pack
	md, err := toml.DecodeFile(packFile, &pack)
	if err != nil {
		if os.IsNotExist(err) {
			return Pack{}, &MissingArtifactError{Path: packFile}
		}
		return Pack{}, &ConfigError{Path: packFile, Reason: err.Error()}
	}
	pack.groupOrder = readGroupOrder(md)
	if err := pack.validate(); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// LoadBuildDefaults reads just the optional [build] table, without validating
// the rest of the declaration. A missing or unreadable file yields zero
// defaults; the build command falls back to its own defaults then.
func LoadBuildDefaults(packFile string) BuildDefaults {
	var pack Pack
	if _, err := toml.DecodeFile(packFile, &pack); err != nil {
		return BuildDefaults{}
	}
	return pack.Build
}

// readGroupOrder records the first appearance of each category group;
// MetaData.Keys returns keys in file order.
func readGroupOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	for _, key := range md.Keys() {
		if len(key) < 2 {
			continue
		}
		switch key[0] {
		case "mods", "resourcepacks", "shaderpacks":
		default:
			continue
		}
		if !slices.Contains(order[key[0]], key[1]) {
			order[key[0]] = append(order[key[0]], key[1])
		}
	}
	return order
}

// validate checks the declaration in a fixed order: pack identity fields,
// dependency fields, loader membership, then each category item.
func (pack Pack) validate() error {
	if err := requireString(pack.Pack.Name, "pack.name"); err != nil {
		return err
	}
	if err := requireString(pack.Pack.Summary, "pack.summary"); err != nil {
		return err
	}
	if err := requireString(pack.Pack.DebugVersion, "pack.debug_version"); err != nil {
		return err
	}
	if err := requireString(pack.Dependencies.Minecraft, "dependencies.minecraft"); err != nil {
		return err
	}
	if err := requireString(pack.Dependencies.Loader, "dependencies.loader"); err != nil {
		return err
	}
	if err := requireString(pack.Dependencies.LoaderVersion, "dependencies.loader_version"); err != nil {
		return err
	}
	if !slices.Contains(SupportedLoaders, pack.Dependencies.Loader) {
		return &ConfigError{
			Path:   "dependencies.loader",
			Reason: fmt.Sprintf("must be one of %s, got %q", strings.Join(SupportedLoaders, ", "), pack.Dependencies.Loader),
		}
	}

	for _, group := range pack.groupOrder["mods"] {
		if err := validateGroup(pack.Mods[group].Mods, fmt.Sprintf("mods.%s.mods", group)); err != nil {
			return err
		}
	}
	for _, group := range pack.groupOrder["resourcepacks"] {
		if err := validateGroup(pack.ResourcePacks[group].Packs, fmt.Sprintf("resourcepacks.%s.packs", group)); err != nil {
			return err
		}
	}
	for _, group := range pack.groupOrder["shaderpacks"] {
		if err := validateGroup(pack.ShaderPacks[group].Packs, fmt.Sprintf("shaderpacks.%s.packs", group)); err != nil {
			return err
		}
	}
	return nil
}

func validateGroup(refs []Reference, path string) error {
	if refs == nil {
		return &ConfigError{Path: path, Reason: "must be an array of tables"}
	}
	for i, ref := range refs {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if ref.URL == "" {
			return &ConfigError{Path: itemPath + ".url", Reason: "must be a non-empty string"}
		}
		if !ValidSide(ref.Side) {
			return &ConfigError{Path: itemPath + ".side", Reason: "must be one of both, client, server"}
		}
	}
	return nil
}

func requireString(value string, path string) error {
	if value == "" {
		return &ConfigError{Path: path, Reason: "must be a non-empty string"}
	}
	return nil
}

// ModReferences returns all declared mod references in declaration order.
func (pack Pack) ModReferences() []Reference {
	var refs []Reference
	for _, group := range pack.groupOrder["mods"] {
		refs = append(refs, pack.Mods[group].Mods...)
	}
	return refs
}

// ResourcePackReferences returns all declared resource pack references in
// declaration order.
func (pack Pack) ResourcePackReferences() []Reference {
	var refs []Reference
	for _, group := range pack.groupOrder["resourcepacks"] {
		refs = append(refs, pack.ResourcePacks[group].Packs...)
	}
	return refs
}

// ShaderPackReferences returns all declared shader pack references in
// declaration order.
func (pack Pack) ShaderPackReferences() []Reference {
	var refs []Reference
	for _, group := range pack.groupOrder["shaderpacks"] {
		refs = append(refs, pack.ShaderPacks[group].Packs...)
	}
	return refs
}

// Template renders the Modrinth index metadata shared by every build of this
// pack.
func (pack Pack) Template() Template {
	return Template{
		FormatVersion: FormatVersion,
		Game:          Game,
		Name:          pack.Pack.Name,
		Summary:       pack.Pack.Summary,
		VersionID:     pack.Pack.DebugVersion,
		Dependencies: map[string]string{
			"minecraft":              pack.Dependencies.Minecraft,
			pack.Dependencies.Loader: pack.Dependencies.LoaderVersion,
		},
	}
}
