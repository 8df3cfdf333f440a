// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconvert/internal/extras"
)

var extrasCmd = &cobra.Command{
	Use:   "extras",
	Short: "Manage optional markitdown feature sets",
}

var extrasInstallCmd = &cobra.Command{
	Use:   "install [names...]",
	Short: "Install markitdown extras with pip",
	Long: `Install runs the configured Python interpreter with
"-m pip install markitdown[names]" and prints the installer output. A batch
or serve invocation afterwards picks up the new capabilities.`,
	RunE: runExtrasInstall,
}

func runExtrasInstall(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more extras names (see `mdconvert extras list`)")
	}

	installer := extras.NewInstaller(viper.GetString("converter.python"), nil)
	ok, output := installer.Install(args)
	fmt.Fprint(os.Stdout, output)
	if !ok {
		return fmt.Errorf("installing %s failed", extras.PackageSpec(args))
	}
	fmt.Printf("Installed %s\n", extras.PackageSpec(args))
	return nil
}

var extrasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known extras groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := extras.Catalog()
		if err != nil {
			return err
		}
		for _, entry := range catalog {
			fmt.Printf("%-24s %s\n", entry.Name, entry.Description)
		}
		return nil
	},
}

func init() {
	extrasCmd.AddCommand(extrasInstallCmd)
	extrasCmd.AddCommand(extrasListCmd)
	rootCmd.AddCommand(extrasCmd)
}
