package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// allCmd resolves everything and then builds, mirroring a full release run.
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Resolve manifests and build .mrpack archives in one run",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		packFile := viper.GetString("pack-file")
		err := runResolve(resolveOptions{
			packFile:          packFile,
			templateOut:       defaultTemplatePath,
			modsLock:          defaultModsLock,
			resourcePacksLock: defaultResourcePacksLock,
			shaderPacksLock:   defaultShaderPacksLock,
			target:            "all",
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		err = runBuild(buildOptions{
			packFile:          packFile,
			templatePath:      defaultTemplatePath,
			modsPath:          defaultModsLock,
			resourcePacksPath: defaultResourcePacksLock,
			shaderPacksPath:   defaultShaderPacksLock,
			side:              viper.GetString("all.side"),
			versionOverride:   viper.GetString("all.version"),
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(allCmd)

	allCmd.Flags().String("side", "", "Side to build (both, client, server)")
	_ = viper.BindPFlag("all.side", allCmd.Flags().Lookup("side"))

	allCmd.Flags().String("version", "", "Override the template versionId")
	_ = viper.BindPFlag("all.version", allCmd.Flags().Lookup("version"))
}
