package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uniqueNameCmd = &cobra.Command{
	Use:   "unique-name <filename>",
	Short: "Print a file name that does not collide with a remote object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context())
		if err != nil {
			return err
		}
		name, err := e.engine.UniqueFilename(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolve unique name: %w", err)
		}
		fmt.Println(name)
		return nil
	},
}
