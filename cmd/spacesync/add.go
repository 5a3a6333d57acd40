package main

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thebluefowl/spacesync/internal/host"
)

var (
	attachmentID int64
	mimeType     string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Announce a newly uploaded attachment",
	Long: `Handles an asset-added event for the given file. Documents and SVGs are
uploaded immediately; raster images wait for "spacesync update" once their
sizes exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Int64Var(&attachmentID, "id", 1, "attachment id")
	addCmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (derived from the extension when empty)")
}

func attachmentFromArgs(file string) (*host.Attachment, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", file, err)
	}
	mt := mimeType
	if mt == "" {
		mt = mime.TypeByExtension(filepath.Ext(abs))
	}
	return &host.Attachment{ID: attachmentID, File: abs, MimeType: mt}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}

	a, err := attachmentFromArgs(args[0])
	if err != nil {
		return err
	}
	e.library.Put(a)

	if a.IsImage() && !a.IsSVG() {
		color.Yellow("ℹ %s is a raster image; run \"spacesync update\" once its sizes are generated", a.File)
		return nil
	}
	if !e.engine.AssetAdded(cmd.Context(), a.ID) {
		return fmt.Errorf("failed to sync %s", a.File)
	}
	color.Green("✓ Synced %s -> %s", a.File, e.engine.Mapper().Map(a.File))
	return nil
}
