package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/core"
	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/modrinth"
)

var resolveTargets = []string{"all", "template", "mods", "resourcepacks", "shaderpacks"}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Render the pack template and resolve lock manifests from the pack declaration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := resolveOptions{
			packFile:          viper.GetString("pack-file"),
			templateOut:       viper.GetString("resolve.template-out"),
			modsLock:          viper.GetString("resolve.mods-lock"),
			resourcePacksLock: viper.GetString("resolve.resource-packs-lock"),
			shaderPacksLock:   viper.GetString("resolve.shader-packs-lock"),
			target:            viper.GetString("resolve.target"),
			check:             viper.GetBool("resolve.check"),
		}
		if err := runResolve(opts); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

type resolveOptions struct {
	packFile          string
	templateOut       string
	modsLock          string
	resourcePacksLock string
	shaderPacksLock   string
	target            string
	check             bool
}

func runResolve(opts resolveOptions) error {
	if !slices.Contains(resolveTargets, opts.target) {
		return fmt.Errorf("--target must be one of %s", strings.Join(resolveTargets, ", "))
	}

	pack, err := core.LoadPack(opts.packFile)
	if err != nil {
		return err
	}

	// Every declared URL is checked up front, so a bad reference fails the
	// run before any output is written, whatever the target.
	for _, refs := range [][]core.Reference{
		pack.ModReferences(), pack.ResourcePackReferences(), pack.ShaderPackReferences(),
	} {
		if err := modrinth.ValidateReferences(refs); err != nil {
			return err
		}
	}

	if opts.target == "all" || opts.target == "template" {
		if opts.check {
			fmt.Printf("Validated template render -> %s\n", opts.templateOut)
		} else {
			if err := core.WriteJSON(opts.templateOut, pack.Template()); err != nil {
				return err
			}
			fmt.Printf("Rendered template -> %s\n", opts.templateOut)
		}
	}

	// Mods filter by the declared loader; resource and shader packs don't.
	categories := []struct {
		name     string
		refs     []core.Reference
		loader   string
		lockPath string
	}{
		{"mods", pack.ModReferences(), pack.Dependencies.Loader, opts.modsLock},
		{"resourcepacks", pack.ResourcePackReferences(), "", opts.resourcePacksLock},
		{"shaderpacks", pack.ShaderPackReferences(), "", opts.shaderPacksLock},
	}
	for _, category := range categories {
		if opts.target != "all" && opts.target != category.name {
			continue
		}
		resolved, err := modrinth.ResolveEntries(category.refs, pack.Dependencies.Minecraft, category.loader, category.name)
		if err != nil {
			return err
		}
		if opts.check {
			fmt.Printf("Validated %s -> %s (%d entries)\n", category.name, category.lockPath, len(resolved))
			continue
		}
		if err := core.WriteManifest(category.lockPath, resolved); err != nil {
			return err
		}
		fmt.Printf("Wrote %s lock -> %s (%d entries)\n", category.name, category.lockPath, len(resolved))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().String("template-out", defaultTemplatePath, "Where to render the pack template")
	_ = viper.BindPFlag("resolve.template-out", resolveCmd.Flags().Lookup("template-out"))

	resolveCmd.Flags().String("mods-lock", defaultModsLock, "Where to write the mods lock manifest")
	_ = viper.BindPFlag("resolve.mods-lock", resolveCmd.Flags().Lookup("mods-lock"))

	resolveCmd.Flags().String("resource-packs-lock", defaultResourcePacksLock, "Where to write the resource packs lock manifest")
	_ = viper.BindPFlag("resolve.resource-packs-lock", resolveCmd.Flags().Lookup("resource-packs-lock"))

	resolveCmd.Flags().String("shader-packs-lock", defaultShaderPacksLock, "Where to write the shader packs lock manifest")
	_ = viper.BindPFlag("resolve.shader-packs-lock", resolveCmd.Flags().Lookup("shader-packs-lock"))

	resolveCmd.Flags().String("target", "all", "Resolve a specific output (all, template, mods, resourcepacks, shaderpacks)")
	_ = viper.BindPFlag("resolve.target", resolveCmd.Flags().Lookup("target"))

	resolveCmd.Flags().Bool("check", false, "Validate and resolve without writing files")
	_ = viper.BindPFlag("resolve.check", resolveCmd.Flags().Lookup("check"))
}
