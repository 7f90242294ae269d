package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is where releases are published.
const githubRepoSlug = "nanowhale/nanowhale"

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update nanowhale to the latest release",
		Long: `Checks for the latest release on GitHub and, if a newer version is
available, downloads it and replaces the current binary in place.`,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current := strings.TrimPrefix(rootCmd.Version, "v")
	if current == "" || current == "dev" {
		return fmt.Errorf("cannot self-update a development version; install a released build first")
	}

	release, err := selfupdate.UpdateSelf(context.Background(), current, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("self-update failed: %w", err)
	}

	if release.Version() == current {
		fmt.Printf("nanowhale is already at the latest version (%s)\n", current)
		return nil
	}
	fmt.Printf("updated to version %s\n", release.Version())
	return nil
}
