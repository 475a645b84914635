package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jsrb/internal/driver"
	"jsrb/internal/project"
)

var (
	translateOut     string
	translateOutDir  string
	translateJobs    int
	translateUI      string
	translateNoCache bool
)

func init() {
	translateCmd.Flags().StringVarP(&translateOut, "out", "o", "", "output file for a single input (\"-\" for stdout)")
	translateCmd.Flags().StringVar(&translateOutDir, "out-dir", "", "output directory for directory inputs")
	translateCmd.Flags().IntVar(&translateJobs, "jobs", 0, "parallel workers for directory inputs (0 = GOMAXPROCS)")
	translateCmd.Flags().StringVar(&translateUI, "ui", "auto", "progress UI for directory inputs (auto|on|off)")
	translateCmd.Flags().BoolVar(&translateNoCache, "no-cache", false, "bypass the translation disk cache")
}

var translateCmd = &cobra.Command{
	Use:   "translate [flags] <ast.json|dir>",
	Short: "Translate ESTree JSON into Ruby source",
	Long: `Translate reads one ESTree JSON document (or a directory of them) produced
by a JavaScript parser front-end and writes the corresponding Ruby source.
Configuration comes from the nearest jsrb.toml, when present.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	manifest, err := project.FindOrDefault(manifestStart(path, st.IsDir()))
	if err != nil {
		return err
	}
	tr, err := driver.New(manifest)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !translateNoCache {
		// A broken cache dir only disables caching, never the run.
		cache, _ = driver.OpenDiskCache("jsrb")
	}

	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	if st.IsDir() {
		opts := driver.DirOptions{
			Jobs:    effectiveJobs(translateJobs, manifest.Translate.Jobs),
			OutDir:  translateOutDir,
			Cache:   cache,
			Timings: timings,
		}
		return runTranslateDir(cmd.Context(), tr, path, opts, quiet)
	}
	return runTranslateFile(tr, path, cache, timings, quiet)
}

// effectiveJobs prefers the --jobs flag; an unset flag falls back to the
// manifest's [translate] jobs value. Zero lets the driver size the pool.
func effectiveJobs(flagValue, manifestValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return manifestValue
}

func manifestStart(path string, isDir bool) string {
	if isDir {
		return path
	}
	return filepath.Dir(path)
}

func runTranslateFile(tr *driver.Translator, path string, cache *driver.DiskCache, timings, quiet bool) error {
	res, err := tr.TranslateFile(path, translateOut, cache, timings)
	if err != nil {
		return err
	}
	if translateOut == "-" {
		fmt.Print(res.Output)
	} else if !quiet {
		note := ""
		if res.Cached {
			note = " (cached)"
		}
		fmt.Printf("%s -> %s%s\n", path, res.OutPath, note)
	}
	if timings && res.Timer != nil {
		fmt.Fprint(os.Stderr, res.Timer.Summary())
	}
	return nil
}

func runTranslateDir(ctx context.Context, tr *driver.Translator, dir string, opts driver.DirOptions, quiet bool) error {
	useUI, err := resolveProgressUI(translateUI, isTerminal(os.Stdout))
	if err != nil {
		return err
	}

	var (
		results []driver.Result
		summary driver.DirSummary
	)
	if useUI {
		results, summary, err = runTranslateDirWithUI(ctx, tr, dir, opts)
	} else {
		results, summary, err = tr.TranslateDir(ctx, dir, opts)
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
		}
	}
	if opts.Timings {
		for _, res := range results {
			if res.Timer != nil {
				fmt.Fprintf(os.Stderr, "%s:\n%s", driver.DisplayPath(res.Path, dir), res.Timer.Summary())
			}
		}
	}
	if !quiet {
		printDirSummary(summary)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

// resolveProgressUI interprets the --ui flag. Auto follows whether stdout
// is attached to a terminal.
func resolveProgressUI(value string, stdoutTTY bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return stdoutTTY, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func printDirSummary(s driver.DirSummary) {
	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed)
	line := fmt.Sprintf("translated %s of %d files", okColor.Sprintf("%d", s.Done), s.Total)
	if s.Cached > 0 {
		line += fmt.Sprintf(" (%d cached)", s.Cached)
	}
	if s.Failed > 0 {
		line += ", " + failColor.Sprintf("%d failed", s.Failed)
	}
	fmt.Println(line)
}
