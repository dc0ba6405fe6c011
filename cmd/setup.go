package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fedigraph/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	fmt.Println()
	fmt.Println("  Welcome to fedigraph!")
	fmt.Println()

	// 1. Endpoint
	fmt.Println("  1. Observer API endpoint")
	fmt.Printf("     Current: %s\n", cfg.General.Endpoint)
	fmt.Print("     > ")
	endpoint, _ := reader.ReadString('\n')
	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" {
		cfg.General.Endpoint = endpoint
	}
	fmt.Println()

	// 2. Default granularity
	fmt.Println("  2. Default bucket granularity")
	fmt.Println("     (1) Month [default]")
	fmt.Println("     (2) Week")
	fmt.Println("     (3) Day")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.General.Granularity = "week"
	case "3":
		cfg.General.Granularity = "day"
	default:
		cfg.General.Granularity = "month"
	}
	fmt.Println()

	// 3. Chart style
	fmt.Println("  3. Default chart style")
	fmt.Println("     (1) Bar [default]")
	fmt.Println("     (2) Line")
	fmt.Print("     > ")
	chartChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(chartChoice) {
	case "2":
		cfg.General.Chart = "line"
	default:
		cfg.General.Chart = "bar"
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fedigraph setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
