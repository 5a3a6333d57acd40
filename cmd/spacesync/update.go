package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thebluefowl/spacesync/internal/host"
	"github.com/thebluefowl/spacesync/internal/mediasync"
)

var updateCmd = &cobra.Command{
	Use:   "update <metadata.json|->",
	Short: "Sync an attachment and all its size variants from its metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func readMetadata(name string) (*host.Metadata, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open metadata: %w", err)
		}
		defer f.Close()
		r = f
	}
	var md host.Metadata
	if err := json.NewDecoder(r).Decode(&md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}
	if err := e.requireBaseDir(); err != nil {
		return err
	}

	md, err := readMetadata(args[0])
	if err != nil {
		return err
	}

	e.engine.MetadataUpdated(cmd.Context(), md)

	for _, path := range mediasync.ExpandVariants(e.library.UploadDir().BaseDir, md) {
		color.Cyan("• %s -> %s", path, e.engine.Mapper().Map(path))
	}
	return nil
}
