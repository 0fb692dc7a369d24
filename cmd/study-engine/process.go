// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindmesh/study-engine/internal/ingest"
	"github.com/mindmesh/study-engine/internal/pipeline"
	"github.com/mindmesh/study-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [documents...]",
	Short: "Run the study pipeline over documents",
	Long: `Process decodes documents (.txt, .md, .pdf), extracts keywords, and
builds the study artifacts: hierarchy, concept graph, and flashcards.
One YAML result file is written per document under the study directory.

With document paths as arguments only those files are processed;
without arguments every supported document in the documents directory
is processed, skipping documents whose results are up to date.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfigFromFlags(cmd)
	p := pipeline.New(cfg)

	if len(args) > 0 {
		for _, path := range args {
			result, err := ingest.IngestFile(p, path, cfg.Ingest.StudyDir)
			if err != nil {
				return fmt.Errorf("processing %s: %w", path, err)
			}
			fmt.Fprintf(os.Stdout, "processed %s (%d keywords, %d cards)\n",
				ingest.DocID(path), len(result.Keywords), len(result.Flashcards))
		}
		return nil
	}

	summary, err := ingest.IngestAll(p, cfg.Ingest, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed processing", summary.Failed)
	}
	return nil
}

func pipelineConfigFromFlags(cmd *cobra.Command) types.PipelineConfig {
	documentsDir, _ := cmd.Flags().GetString("documents-dir")
	studyDir, _ := cmd.Flags().GetString("study-dir")
	topN, _ := cmd.Flags().GetInt("top-n")
	maxKeywords, _ := cmd.Flags().GetInt("max-keywords")
	maxRelations, _ := cmd.Flags().GetInt("max-relation-cards")
	randomTemplates, _ := cmd.Flags().GetBool("random-templates")

	return types.PipelineConfig{
		Scoring: types.ScoringConfig{TopN: topN},
		Cards: types.CardConfig{
			MaxKeywords:      maxKeywords,
			MaxRelationCards: maxRelations,
			RandomTemplates:  randomTemplates,
		},
		Ingest: types.IngestConfig{
			DocumentsDir: documentsDir,
			StudyDir:     studyDir,
		},
	}
}

func init() {
	processCmd.Flags().String("documents-dir", "documents", "directory scanned for source documents")
	processCmd.Flags().String("study-dir", "study", "base directory for study output (contains results/, index/)")
	processCmd.Flags().Int("top-n", 0, "maximum keywords to extract (0 = default)")
	processCmd.Flags().Int("max-keywords", 0, "maximum keywords receiving flashcards (0 = default)")
	processCmd.Flags().Int("max-relation-cards", 0, "maximum relationship cards (0 = default)")
	processCmd.Flags().Bool("random-templates", false, "pick question templates randomly instead of by keyword hash")

	rootCmd.AddCommand(processCmd)
}
