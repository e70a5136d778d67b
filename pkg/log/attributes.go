// Package log defines standard attribute keys for mining operations.
//
// Keys follow a dotted hierarchy ("data.transactions", "mining.level") so log
// lines from the loader, encoder, miner and exporters can be filtered the same
// way.

package log

// Operation context.
const (
	// ComponentKey identifies the package or stage emitting the record.
	// Examples: "dataset.loader", "mining.apriori", "report"
	ComponentKey = "component"

	// StageKey names the pipeline stage within a component.
	StageKey = "stage"

	// OperationKey names the operation being performed.
	OperationKey = "operation"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records how many goroutines counted supports.
	WorkersKey = "perf.workers"
)

// Data shape.
const (
	// RowsKey is the number of raw (key, item) records read.
	RowsKey = "data.rows"

	// DroppedKey is the number of records dropped during loading.
	DroppedKey = "data.dropped"

	// TransactionsKey is the number of grouped transactions.
	TransactionsKey = "data.transactions"

	// ItemsKey is the size of the item vocabulary.
	ItemsKey = "data.items"

	// GroupByKey lists the columns forming the grouping key.
	GroupByKey = "data.group_by"

	// PathKey is a file path being read or written.
	PathKey = "io.path"
)

// Mining parameters and progress.
const (
	MinSupportKey = "mining.min_support"
	MaxLenKey     = "mining.max_len"

	// LevelKey is the itemset size of the level being mined.
	LevelKey = "mining.level"

	// CandidatesKey is the number of candidates that survived pruning.
	CandidatesKey = "mining.candidates"

	// PrunedKey is the number of candidates discarded by subset pruning.
	PrunedKey = "mining.pruned"

	// FrequentKey is the number of frequent itemsets found.
	FrequentKey = "mining.frequent"

	MaximalKey = "mining.maximal"
	ClosedKey  = "mining.closed"

	// StatusKey reports the run status ("ok", "empty_input", "cancelled").
	StatusKey = "mining.status"

	// QueryKey is the item a recommendation was requested for.
	QueryKey = "recommend.query"

	// FamilyKey names the itemset family a table or recommendation is built from.
	FamilyKey = "recommend.family"

	CompanionsKey = "recommend.companions"
)

// Error context.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Attr is a pre-built key/value pair. Loggers accept it anywhere a key is
// expected.
type Attr struct {
	Key   string
	Value any
}

// ErrAttr wraps err as the "error" field.
func ErrAttr(err error) Attr {
	return Attr{Key: ErrAttrKey, Value: err}
}

// Standard operation names.
const (
	OperationLoad      = "load"
	OperationEncode    = "encode"
	OperationFit       = "fit"
	OperationDerive    = "derive"
	OperationRecommend = "recommend"
	OperationExport    = "export"
)
