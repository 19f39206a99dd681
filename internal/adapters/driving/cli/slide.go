package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var slideJSON bool

var slideCmd = &cobra.Command{
	Use:   "slide [deck] [index]",
	Short: "Show the stored record of one slide",
	Long: `Prints the indexed record of one slide: the exact stored text,
title, tags and index timestamp. The index is zero-based.`,
	Args: cobra.ExactArgs(2),
	RunE: runSlide,
}

func init() {
	slideCmd.Flags().BoolVar(&slideJSON, "json", false, "output the record as JSON")
	rootCmd.AddCommand(slideCmd)
}

func runSlide(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	sourceName := args[0]
	slideIndex, err := strconv.Atoi(args[1])
	if err != nil || slideIndex < 0 {
		return fmt.Errorf("invalid slide index %q", args[1])
	}

	record, err := retrievalService.Lookup(cmd.Context(), sourceName, slideIndex)
	if err != nil {
		return fmt.Errorf("looking up slide: %w", err)
	}

	if slideJSON {
		out := struct {
			SourceName string   `json:"source_name"`
			SlideID    string   `json:"slide_id"`
			SlideIndex int      `json:"slide_index"`
			Title      string   `json:"title"`
			Text       string   `json:"text"`
			Tags       []string `json:"tags,omitempty"`
			IndexedAt  string   `json:"indexed_at"`
		}{
			SourceName: record.SourceName,
			SlideID:    record.SlideLocalID,
			SlideIndex: record.SlideIndex,
			Title:      record.Title,
			Text:       record.Text,
			Tags:       []string(record.Tags),
			IndexedAt:  record.IndexedAt,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s (slide %d of %s)\n", record.SlideLocalID, record.SlideIndex, record.SourceName)
	if len(record.Tags) > 0 {
		cmd.Printf("Tags: %s\n", record.Tags.String())
	}
	cmd.Printf("Indexed: %s\n", record.IndexedAt)
	cmd.Println()
	cmd.Println(record.Text)
	return nil
}
