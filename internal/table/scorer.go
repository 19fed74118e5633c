package table

// Scorer rates a set of extracted tables; higher is better. The fallback
// policy uses it to judge whether a retry with another detection flavor
// actually improved matters.
type Scorer func(tables []Table) int

// MaxColumnScore is the default Scorer: the largest column count across
// all tables. Cheap, and a collapsed detection (everything in one blob
// column) scores visibly worse than a real segmentation.
func MaxColumnScore(tables []Table) int {
	return MaxColumns(tables)
}
