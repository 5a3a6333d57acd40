package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that the configured bucket accepts writes and deletes",
	Long:  `Writes a small test object to the bucket and removes it again.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context())
	if err != nil {
		return err
	}

	res := e.engine.TestConnection(cmd.Context())

	border := lipgloss.Color("42")
	if !res.OK {
		border = lipgloss.Color("196")
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		BorderForeground(border)
	fmt.Println(boxStyle.Render(res.Detail))

	if !res.OK {
		return errors.New("connection test failed")
	}
	return nil
}
