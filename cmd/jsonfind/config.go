package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taigrr/jsonfind/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}

	initCmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Write a settings file with the default values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing settings file")

	cmd.AddCommand(initCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args, 0)
	if err != nil {
		return err
	}

	target := filepath.Join(root, config.FileNames[0])
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", target)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	data, err := config.New().Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
	return nil
}
