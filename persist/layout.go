package persist

import (
	"fmt"
	"path/filepath"
)

// ShardSize bounds how many records share one directory. Large datasets
// otherwise produce directories with hundreds of thousands of files.
const ShardSize = 1000

// ShardDir returns the shard directory name for a record,
// e.g. records003 for record 3500
func ShardDir(recordID int) string {
	return fmt.Sprintf("records%03d", (recordID-1)/ShardSize)
}

// FeatureFilename returns the canonical feature document name for one
// record channel, e.g. 00042_canal3_features.json
func FeatureFilename(recordID, channel int) string {
	return fmt.Sprintf("%05d_canal%d_features.json", recordID, channel)
}

// ProcessedFilename returns the canonical conditioned-signal archive name,
// e.g. 00042_processed.npz
func ProcessedFilename(recordID int) string {
	return fmt.Sprintf("%05d_processed.npz", recordID)
}

// FeaturePath joins the output root, shard directory and feature filename.
// Downstream consumers depend on this exact layout; do not vary it.
func FeaturePath(root string, recordID, channel int) string {
	return filepath.Join(root, ShardDir(recordID), FeatureFilename(recordID, channel))
}

// ProcessedPath joins the output root, shard directory and archive
// filename
func ProcessedPath(root string, recordID int) string {
	return filepath.Join(root, ShardDir(recordID), ProcessedFilename(recordID))
}
