// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmesh/study-engine/internal/segment"
	"github.com/mindmesh/study-engine/internal/study"
	"github.com/mindmesh/study-engine/pkg/types"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Manage the card index and review schedule",
	Long: `Study manages a local SQLite index built from study result files.
Use subcommands to index results, search cards, list due reviews,
mark reviews complete, or export the deck.`,
}

// --- store subcommand ---

var studyStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest study results into the card index",
	Long: `Store reads result YAML files from the study results directory,
ingests them into a SQLite database with FTS5 indexing over card text,
and writes an export file. Unchanged documents are skipped on
subsequent runs.`,
	RunE: runStudyStore,
}

func runStudyStore(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d result(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- cards subcommand ---

var studyCardsCmd = &cobra.Command{
	Use:   "cards [query]",
	Short: "Search flashcards with full-text search and filters",
	Long: `Cards searches the card index using FTS5 full-text search over
questions and answers, structured filters (type, difficulty, category,
document), or a combination of both.`,
	RunE: runStudyCards,
}

func runStudyCards(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --type, --difficulty, --category, or --document")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCardOutput(results, jsonOutput)
}

func formatCardOutput(results []study.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No cards found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-13s  %-50s  %-10s  %s\n",
		"ID", "Type", "Question", "Difficulty", "Document")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range results {
		question := trimDisplay(r.Question, 50)
		fmt.Fprintf(os.Stdout, "%-12s  %-13s  %-50s  %-10s  %s\n",
			r.ID, r.Type, question, r.Difficulty, r.DocumentID)
	}

	fmt.Fprintf(os.Stdout, "\n%d cards\n", len(results))
	return nil
}

// --- due subcommand ---

var studyDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List cards whose next review is due",
	Long: `Due lists every card whose earliest incomplete review is due now or
earlier, ordered by due date. Use --at to evaluate the schedule at a
different time.`,
	RunE: runStudyDue,
}

func runStudyDue(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("parsing --at %q: %w", at, err)
		}
		now = parsed
	}

	due, err := store.DueCards(context.Background(), now)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(due)
	}

	if len(due) == 0 {
		fmt.Println("No reviews due.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-7s  %-50s  %s\n", "ID", "Review", "Question", "Due")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, dc := range due {
		question := trimDisplay(dc.Question, 50)
		fmt.Fprintf(os.Stdout, "%-12s  %-7d  %-50s  %s\n",
			dc.ID, dc.ReviewNumber, question, dc.DueDate.Format("2006-01-02"))
	}

	fmt.Fprintf(os.Stdout, "\n%d reviews due\n", len(due))
	return nil
}

// --- review subcommand ---

var studyReviewCmd = &cobra.Command{
	Use:   "review <card-id> <review-number>",
	Short: "Mark a card review as completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runStudyReview,
}

func runStudyReview(cmd *cobra.Command, args []string) error {
	var reviewNumber int
	if _, err := fmt.Sscanf(args[1], "%d", &reviewNumber); err != nil {
		return fmt.Errorf("parsing review number %q: %w", args[1], err)
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.CompleteReview(context.Background(), args[0], reviewNumber); err != nil {
		return err
	}
	fmt.Printf("Completed review %d of card %s\n", reviewNumber, args[0])
	return nil
}

// --- export subcommand ---

var studyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the card index to YAML or JSON",
	Long: `Export writes the full card index (or a filtered subset) to
the study index directory as export.yaml or export.json. Supports the
same filter flags as cards for partial exports.`,
	RunE: runStudyExport,
}

func runStudyExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

// trimDisplay shortens a string for table output, keeping rune boundaries
// intact.
func trimDisplay(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return segment.Truncate(s, width-3) + "..."
}

func openStore(cmd *cobra.Command) (*study.Store, error) {
	studyDir, _ := cmd.Flags().GetString("study-dir")
	if studyDir == "" {
		studyDir = "study"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return study.NewStore(types.StudyBaseConfig{
		StudyDir:   studyDir,
		MaxResults: maxResults,
	})
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) study.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	cardType, _ := cmd.Flags().GetString("type")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	category, _ := cmd.Flags().GetString("category")
	documentID, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")

	return study.QueryOptions{
		Query:      queryText,
		Type:       types.CardType(cardType),
		Difficulty: types.Difficulty(difficulty),
		Category:   category,
		DocumentID: documentID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	studyCmd.PersistentFlags().String("study-dir", "study", "base directory for study data (contains results/, index/)")
	studyCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Cards flags.
	studyCardsCmd.Flags().String("query", "", "full-text search query")
	studyCardsCmd.Flags().String("type", "", "filter by card type: definition, fill-in-blank, relationship, recall")
	studyCardsCmd.Flags().String("difficulty", "", "filter by difficulty: easy, medium, hard")
	studyCardsCmd.Flags().String("category", "", "filter by keyword category")
	studyCardsCmd.Flags().String("document", "", "filter by document ID")
	studyCardsCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	studyCardsCmd.Flags().Bool("json", false, "output results as JSON")

	// Due flags.
	studyDueCmd.Flags().String("at", "", "evaluate due reviews at this RFC3339 time instead of now")
	studyDueCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	studyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	studyExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	studyExportCmd.Flags().String("type", "", "filter by card type for partial export")
	studyExportCmd.Flags().String("difficulty", "", "filter by difficulty for partial export")
	studyExportCmd.Flags().String("category", "", "filter by category for partial export")
	studyExportCmd.Flags().String("document", "", "filter by document ID for partial export")
	studyExportCmd.Flags().Int("limit", 0, "maximum cards to export (0 = all)")

	// Wire subcommands.
	studyCmd.AddCommand(studyStoreCmd)
	studyCmd.AddCommand(studyCardsCmd)
	studyCmd.AddCommand(studyDueCmd)
	studyCmd.AddCommand(studyReviewCmd)
	studyCmd.AddCommand(studyExportCmd)

	rootCmd.AddCommand(studyCmd)
}
