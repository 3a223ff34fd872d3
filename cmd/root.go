package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nerja",
	Short: "nerja - harvest HD landscape images into a wallpaper library",
	Long: `nerja scans a folder tree for JPEG and PNG images wider than 1920 pixels,
classifies them by orientation and aspect ratio, and can copy the landscape
ones into widescreen/ and normal/ folders of a target library.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SilenceErrors = true
}
