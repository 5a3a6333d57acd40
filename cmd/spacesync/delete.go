package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteMetadata string

var deleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Remove the remote copies of a deleted attachment",
	Long: `Handles an asset-deleted event. For images, pass --metadata so every size
variant is removed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().Int64Var(&attachmentID, "id", 1, "attachment id")
	deleteCmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (derived from the extension when empty)")
	deleteCmd.Flags().StringVar(&deleteMetadata, "metadata", "", "attachment metadata JSON file")
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}

	a, err := attachmentFromArgs(args[0])
	if err != nil {
		return err
	}
	if deleteMetadata != "" {
		if err := e.requireBaseDir(); err != nil {
			return err
		}
		if a.Metadata, err = readMetadata(deleteMetadata); err != nil {
			return err
		}
	}

	if !e.cfg.DeleteRemoteOnLocalDelete {
		color.Yellow("ℹ Remote deletes are disabled (DOS_STORAGE_FILE_DELETE); nothing to do")
		return nil
	}

	e.library.Put(a)
	e.engine.AssetDeleted(cmd.Context(), a.ID)
	color.Green("✓ Processed delete for %s", a.File)
	return nil
}
