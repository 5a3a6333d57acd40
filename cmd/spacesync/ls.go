package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thebluefowl/spacesync/internal/storage"
)

var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List remote objects",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}
	lister, ok := e.store.(storage.Lister)
	if !ok {
		return errors.New("storage driver cannot list objects")
	}

	prefix := e.cfg.StoragePath
	if len(args) == 1 {
		prefix = args[0]
	}

	objects, err := lister.List(cmd.Context(), prefix)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, obj := range objects {
		fmt.Fprintf(w, "%d\t%s\t%s\n", obj.Size, obj.LastModified, obj.Key)
	}
	return w.Flush()
}
