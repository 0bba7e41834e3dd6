package domain

// Settings are the effective application settings.
type Settings struct {
	Pipeline PipelineSettings
	Merge    MergeSettings
	Storage  StorageSettings
}

// PipelineSettings describe where corpora live and how they are named.
type PipelineSettings struct {
	// Dir is the pipeline directory, relative to the project root unless absolute.
	Dir string

	// CorpusFile is the name of a source corpus.
	CorpusFile string

	// OutputFile is the name of a converted corpus.
	OutputFile string

	// DisplayName is the fallback display name.
	DisplayName string
}

// MergeSettings configure the merge workflow.
type MergeSettings struct {
	// DefaultQuota is the suggested number of tweets per account.
	DefaultQuota int
}

// StorageSettings locate the corpus store.
type StorageSettings struct {
	// Dir holds corpus.db. Empty means the default data directory.
	Dir string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Pipeline: PipelineSettings{
			Dir:         "pipeline",
			CorpusFile:  DefaultCorpusFile,
			OutputFile:  DefaultOutputFile,
			DisplayName: DefaultDisplayName,
		},
		Merge: MergeSettings{
			DefaultQuota: 50,
		},
	}
}
