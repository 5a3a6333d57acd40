package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	constantsFile string
	settingsFile  string
	baseDirFlag   string
	subdirFlag    string
	logLevel      string
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:   "spacesync",
	Short: "Mirror media uploads into S3-compatible object storage",
	Long: `A tool that mirrors a media library (originals and every generated size
variant) into an S3-compatible bucket such as DigitalOcean Spaces.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&constantsFile, "config", "", "YAML file with deploy-time constants")
	flags.StringVar(&settingsFile, "settings", "", "encrypted settings file (default <user config dir>/spacesync/settings.enc)")
	flags.StringVar(&baseDirFlag, "base-dir", "", "host upload root (defaults to the configured upload path)")
	flags.StringVar(&subdirFlag, "subdir", time.Now().Format("/2006/01"), "current upload subdirectory below the upload root")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(uniqueNameCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(serveCmd)
}
