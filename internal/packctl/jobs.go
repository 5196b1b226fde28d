package packctl

import "packtest/internal/dataset"

// CompressionJob carries everything needed to compress one sample dataset
// and, later, to search it: the dataset's metadata (time bounds, file-path
// target) outlives the compression step. Immutable after construction.
type CompressionJob struct {
	DatasetName string
	Metadata    dataset.Metadata

	// Options are extra CLI options for the compression script, e.g.
	// timestamp-key and dataset selection for structured modes. May be nil.
	Options []string

	// DatasetPath is the directory holding the original raw log files.
	DatasetPath string
}

// SearchJob describes one search-type verification. Compression is a
// non-owning reference to the job whose archive is being searched; the
// compression job always outlives its search jobs within a scenario.
type SearchJob struct {
	Name        string
	Compression *CompressionJob
	Options     []string
	Query       string

	// PathScope, when non-empty, narrows the search (and the oracle) to a
	// specific sub-path of the dataset instead of the whole tree.
	PathScope string
}
