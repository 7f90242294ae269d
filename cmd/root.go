package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanowhale/internal/config"
	"nanowhale/internal/tui"
	"nanowhale/pkg/logging"
)

var (
	flagDebug  bool
	flagWSL    bool
	flagNative bool
)

// rootCmd launches the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "nanowhale",
	Short: "A tiny terminal dashboard for your container engine",
	Long: `nanowhale is a keyboard-driven terminal dashboard for inspecting and
controlling containers, images, volumes and networks through the engine's
own CLI. It streams live stats and logs, supports batch actions over marked
entities, and can drop you into an interactive shell inside a container.`,
	// SilenceUsage prevents printing the usage block on runtime errors we
	// already report ourselves.
	SilenceUsage: true,
	RunE:         runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	switch {
	case flagWSL:
		on := true
		cfg.Engine.UseSubsystem = &on
	case flagNative:
		off := false
		cfg.Engine.UseSubsystem = &off
	}

	level := logging.LevelInfo
	if flagDebug {
		level = logging.LevelDebug
	}
	logCh := logging.InitForTUI(level)
	defer logging.Close()

	return tui.Run(&cfg, logCh)
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command. Called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "nanowhale version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero.
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "log debug detail to the activity pane")
	rootCmd.Flags().BoolVar(&flagWSL, "wsl", false, "run the engine CLI through the configured subsystem prefix (e.g. wsl)")
	rootCmd.Flags().BoolVar(&flagNative, "native", false, "run the engine CLI directly, overriding the subsystem prefix")
	rootCmd.MarkFlagsMutuallyExclusive("wsl", "native")
}
