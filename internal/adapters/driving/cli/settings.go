package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// configStore is injected by main alongside the services.
var configStore driven.ConfigStore

// SetConfigStore injects the configuration store used by the settings
// commands.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// shownSettings are the keys listed by 'settings show', with secrets
// masked.
var shownSettings = []struct {
	key    string
	secret bool
}{
	{"embedding.provider", false},
	{"embedding.model", false},
	{"embedding.base_url", false},
	{"embedding.api_key", true},
	{"llm.model", false},
	{"llm.api_key", true},
	{"index.backend", false},
	{"index.qdrant_addr", false},
	{"library.root", false},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, LLM, index backend and
library location. Settings persist in the deckdex config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Set a secret value without echoing it",
	Long: `Prompts for a secret (such as an API key) without echoing the input
and stores it under the given configuration key.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Settings (%s)\n", configStore.Path())
	cmd.Println()
	for _, s := range shownSettings {
		value, ok := configStore.Get(s.key)
		switch {
		case !ok:
			cmd.Printf("  %s: (not set)\n", s.key)
		case s.secret:
			cmd.Printf("  %s: %s\n", s.key, maskSecret(fmt.Sprint(value)))
		default:
			cmd.Printf("  %s: %v\n", s.key, value)
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	cmd.Printf("Enter value for %s: ", key)
	value := readSecret()
	cmd.Println()
	if value == "" {
		return errors.New("no value entered")
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
