package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the source deck library",
}

var libraryUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Add a deck to the library and index it",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryUpload,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library decks and their index status",
	RunE:  runLibraryList,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [deck]",
	Short: "Remove a deck from the library and the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryCmd.AddCommand(libraryUploadCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryUpload(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	key := filepath.Base(path)
	if err := libraryService.Upload(cmd.Context(), key, data); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded and indexed %s.\n", key)
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	decks, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing library: %w", err)
	}

	if len(decks) == 0 {
		cmd.Println("Library is empty.")
		return nil
	}

	cmd.Println("Library:")
	for _, deck := range decks {
		status := "not indexed"
		if deck.Indexed {
			status = fmt.Sprintf("%d slide(s) indexed", deck.Slides)
		}
		cmd.Printf("  %s - %s\n", deck.Key, status)
	}
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	key := args[0]
	if err := libraryService.Remove(cmd.Context(), key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}

	cmd.Printf("Removed %s.\n", key)
	return nil
}
