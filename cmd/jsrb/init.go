package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jsrb/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a jsrb project",
	Long: `Initialize a jsrb project by creating a jsrb.toml manifest with the
translator defaults spelled out. If [path] is omitted, initializes the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const manifestTemplate = `# jsrb project manifest.

[translate]
# Spaces per indentation level of the generated Ruby.
indent_width = 2
# Print call the correction pipeline stringifies arguments for.
print_builtin = "puts"
# Source-language floor function rewritten to a postfix method call.
floor_source = "Math.floor"

[corrections]
# Set to true to discard the stock correction table.
replace_defaults = false

# Extra table entries are applied after the stock ones, in file order:
# [[corrections.rule]]
# pattern = 'alert'
# replace = 'warn'
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", abs, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", abs)
	}

	manifestPath := filepath.Join(abs, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(manifestTemplate), 0o644); err != nil {
		return err
	}
	fmt.Printf("created %s\n", manifestPath)
	return nil
}
