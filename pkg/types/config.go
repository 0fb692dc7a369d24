package types

// ScoringConfig holds settings for keyword extraction.
type ScoringConfig struct {
	// TopN is the maximum number of keywords to return (default 20).
	TopN int `json:"top_n" yaml:"top_n"`
}

// CardConfig holds settings for flashcard generation.
type CardConfig struct {
	// MaxKeywords caps how many top keywords receive cards (default 15).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords"`

	// MaxRelationCards caps relationship cards per run (default 5).
	MaxRelationCards int `json:"max_relation_cards" yaml:"max_relation_cards"`

	// RandomTemplates selects question templates randomly instead of by
	// keyword hash. Hash selection keeps runs reproducible; randomness is
	// opt-in at the composition root.
	RandomTemplates bool `json:"random_templates" yaml:"random_templates"`
}

// IngestConfig holds settings for the document ingestion stage.
type IngestConfig struct {
	// DocumentsDir is the directory scanned for source documents
	// (.txt, .md, .pdf).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// StudyDir is the base directory for study output (contains results/,
	// index/).
	StudyDir string `json:"study_dir" yaml:"study_dir"`
}

// StudyBaseConfig holds settings for the study store.
type StudyBaseConfig struct {
	// StudyDir is the base directory for study data (contains results/,
	// index/).
	StudyDir string `json:"study_dir" yaml:"study_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups the document pipeline stage configurations. The
// study store is configured separately with StudyBaseConfig; it consumes
// pipeline output but is not a pipeline stage.
type PipelineConfig struct {
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Cards   CardConfig    `json:"cards" yaml:"cards"`
	Ingest  IngestConfig  `json:"ingest" yaml:"ingest"`
}
