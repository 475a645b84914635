package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsrb/internal/correct"
	"jsrb/internal/project"
)

var correctionsCmd = &cobra.Command{
	Use:   "corrections [path]",
	Short: "Show the effective correction table",
	Long: `Corrections prints the correction-table entries that would apply to a
translation started at the given path (default "."), in application order.
Entries come from the stock table plus the nearest jsrb.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorrections,
}

func runCorrections(cmd *cobra.Command, args []string) error {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	manifest, err := project.FindOrDefault(start)
	if err != nil {
		return err
	}
	rules := manifest.Rules()

	// Compiling validates the table the same way a translation would,
	// so a broken manifest fails here instead of mid-run.
	if _, err := correct.New(rules, manifest.CorrectOptions()); err != nil {
		return err
	}

	if manifest.Root != "" {
		fmt.Fprintf(os.Stderr, "manifest: %s\n", manifest.Root)
	}
	idx := color.New(color.FgCyan)
	for i, r := range rules {
		fmt.Printf("%s  %-32q -> %q\n", idx.Sprintf("%2d", i+1), r.Pattern, r.Replace)
	}
	return nil
}
