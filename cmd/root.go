package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chuj",
	Short: "A command line tool for resolving and building the CHUJ modpack",
}

// Execute starts the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Default artifact locations, shared by the resolve and build commands.
const (
	defaultTemplatePath      = "modpack/pack.template.json"
	defaultModsLock          = "modpack/mods.lock.json"
	defaultResourcePacksLock = "modpack/resource-packs.lock.json"
	defaultShaderPacksLock   = "modpack/shader-packs.lock.json"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("pack-file", "modpack/pack.toml", "The modpack declaration file to use")
	_ = viper.BindPFlag("pack-file", rootCmd.PersistentFlags().Lookup("pack-file"))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chuj.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".chuj" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chuj")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
