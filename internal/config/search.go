package config

// SearchConfig configures the documentation index.
type SearchConfig struct {
	IndexPath  string `yaml:"index_path"`  // SQLite cache file, relative to the workspace
	MaxResults int    `yaml:"max_results"` // Result cap per query
	ChunkSize  int    `yaml:"chunk_size"`  // Approximate tokens per chunk
}

// DefaultSearchConfig returns the stock search settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		IndexPath:  ".sceneforge-index.db",
		MaxResults: 10,
		ChunkSize:  400,
	}
}

func (c *SearchConfig) fillDefaults() {
	d := DefaultSearchConfig()
	if c.IndexPath == "" {
		c.IndexPath = d.IndexPath
	}
	if c.MaxResults == 0 {
		c.MaxResults = d.MaxResults
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = d.ChunkSize
	}
}
