package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"luafmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "luafmt",
	Short: "Lua source code formatter",
	Long:  `luafmt parses Lua source and reprints it in a consistent style`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
