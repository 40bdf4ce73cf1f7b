package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/core"
	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/mrpack"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build side-specific .mrpack archives from the lock manifests",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := buildOptions{
			packFile:          viper.GetString("pack-file"),
			templatePath:      viper.GetString("build.template"),
			modsPath:          viper.GetString("build.mods"),
			resourcePacksPath: viper.GetString("build.resource-packs"),
			shaderPacksPath:   viper.GetString("build.shader-packs"),
			side:              viper.GetString("build.side"),
			dist:              viper.GetString("build.dist"),
			slug:              viper.GetString("build.slug"),
			versionOverride:   viper.GetString("build.version"),
		}
		if err := runBuild(opts); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

type buildOptions struct {
	packFile          string
	templatePath      string
	modsPath          string
	resourcePacksPath string
	shaderPacksPath   string
	side              string
	dist              string
	slug              string
	versionOverride   string
}

func runBuild(opts buildOptions) error {
	defaults := core.LoadBuildDefaults(opts.packFile)
	side := firstNonEmpty(opts.side, defaults.DefaultSide, core.UniversalSide)
	if !core.ValidSide(side) {
		return fmt.Errorf("--side must be one of both, client, server")
	}
	slug := firstNonEmpty(opts.slug, defaults.Slug, "chuj")
	dist := firstNonEmpty(opts.dist, defaults.DistDir, "dist")

	// All inputs are loaded and validated before any archive is written.
	template, err := core.LoadTemplate(opts.templatePath)
	if err != nil {
		return err
	}
	var manifests mrpack.Manifests
	if manifests.Mods, err = core.LoadManifest(opts.modsPath); err != nil {
		return err
	}
	if manifests.ResourcePacks, err = core.LoadManifest(opts.resourcePacksPath); err != nil {
		return err
	}
	if manifests.ShaderPacks, err = core.LoadManifest(opts.shaderPacksPath); err != nil {
		return err
	}

	sides := []string{side}
	if side == core.UniversalSide {
		sides = []string{core.ClientSide, core.ServerSide}
	}
	for _, target := range sides {
		result, err := mrpack.Build(template, manifests, mrpack.Options{
			Side:            target,
			Slug:            slug,
			DistDir:         dist,
			VersionOverride: opts.versionOverride,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Built %s (mods: %d, resource packs: %d, shader packs: %d)\n",
			result.Path, result.ModCount, result.ResourcePackCount, result.ShaderPackCount)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("side", "", "Side to build (both, client, server; default from the [build] table, else both)")
	_ = viper.BindPFlag("build.side", buildCmd.Flags().Lookup("side"))

	buildCmd.Flags().String("dist", "", "Output directory for built archives")
	_ = viper.BindPFlag("build.dist", buildCmd.Flags().Lookup("dist"))

	buildCmd.Flags().String("slug", "", "Archive name prefix")
	_ = viper.BindPFlag("build.slug", buildCmd.Flags().Lookup("slug"))

	buildCmd.Flags().String("version", "", "Override the template versionId")
	_ = viper.BindPFlag("build.version", buildCmd.Flags().Lookup("version"))

	buildCmd.Flags().String("template", defaultTemplatePath, "The rendered pack template to use")
	_ = viper.BindPFlag("build.template", buildCmd.Flags().Lookup("template"))

	buildCmd.Flags().String("mods", defaultModsLock, "The mods lock manifest to use")
	_ = viper.BindPFlag("build.mods", buildCmd.Flags().Lookup("mods"))

	buildCmd.Flags().String("resource-packs", defaultResourcePacksLock, "The resource packs lock manifest to use")
	_ = viper.BindPFlag("build.resource-packs", buildCmd.Flags().Lookup("resource-packs"))

	buildCmd.Flags().String("shader-packs", defaultShaderPacksLock, "The shader packs lock manifest to use")
	_ = viper.BindPFlag("build.shader-packs", buildCmd.Flags().Lookup("shader-packs"))
}
