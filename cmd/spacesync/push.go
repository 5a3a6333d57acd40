package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thebluefowl/spacesync/internal/progress"
)

var pushCmd = &cobra.Command{
	Use:   "push [dir]",
	Short: "Upload every existing file below the upload root",
	Long: `Walks a directory (the upload root by default) and applies the normal
upload rules to every regular file. Useful when enabling sync on an existing
library.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPush,
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	if err := e.requireBaseDir(); err != nil {
		return err
	}

	root := e.library.UploadDir().BaseDir
	if len(args) == 1 {
		root = args[0]
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	bar := progress.NewFileBar("☁️  PUSH", len(paths))
	report := e.engine.Push(ctx, paths, func(string, error) { _ = bar.Add(1) })
	_ = bar.Finish()

	color.Green("✓ %d uploaded, %d skipped", report.Uploaded, report.Skipped)
	if len(report.Failed) > 0 {
		for _, err := range report.Failed {
			color.Red("✗ %v", err)
		}
		return fmt.Errorf("%d files failed", len(report.Failed))
	}
	return nil
}
