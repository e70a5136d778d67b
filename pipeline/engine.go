// Package pipeline runs the whole mining flow behind one request/response
// call: load, group, encode, mine, derive and recommend.
//
// Callers such as the CLI pass structured configuration in a Request and get
// structured tables back; no stage prints or prompts.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/YuminosukeSato/basketmine/dataset"
	"github.com/YuminosukeSato/basketmine/metrics"
	"github.com/YuminosukeSato/basketmine/mining"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/YuminosukeSato/basketmine/pkg/log"
	"github.com/YuminosukeSato/basketmine/preprocessing"
	"github.com/YuminosukeSato/basketmine/recommend"
	"github.com/YuminosukeSato/basketmine/report"
)

// Status reports how a run ended.
type Status = mining.Status

// Run statuses.
const (
	StatusOK         = mining.StatusOK
	StatusEmptyInput = mining.StatusEmptyInput
	StatusCancelled  = mining.StatusCancelled
)

// Stats are the scalar results of a run.
type Stats = report.Stats

// Request describes one mining run.
type Request struct {
	// Records are used as-is when Source is nil.
	Records []dataset.Record
	// Source, when set, is read as CSV according to Schema.
	Source io.Reader
	// Schema defaults to dataset.DefaultSchema when empty.
	Schema    dataset.Schema
	Delimiter rune

	MinSupport float64
	MaxLen     int
	// NJobs is the number of support-counting workers; 0 means 1.
	NJobs int

	// Query asks for companions of an item. Nil means no recommendation was
	// requested, which the Response keeps distinct from an empty one.
	Query *string
}

// Response is the structured result of a run.
type Response struct {
	Status   Status             `json:"status"`
	Stats    Stats              `json:"stats"`
	Load     dataset.LoadReport `json:"load"`
	Summary  metrics.Summary    `json:"summary"`
	Frequent report.Table       `json:"frequent"`
	Maximal  report.Table       `json:"maximal"`
	Closed   report.Table       `json:"closed"`

	Recommendation *recommend.Recommendation `json:"recommendation,omitempty"`

	// Itemsets is the raw miner output.
	Itemsets *mining.FrequentItemsets `json:"-"`
}

// Tables returns the three tables in export order.
func (r *Response) Tables() []report.Table {
	return []report.Table{r.Frequent, r.Maximal, r.Closed}
}

// Engine runs requests. It holds no per-run state and is safe for concurrent
// use.
type Engine struct {
	logger            log.Logger
	parallelThreshold int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger passed to every stage.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithParallelThreshold sets the miner's per-level parallel threshold.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		e.parallelThreshold = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{parallelThreshold: mining.DefaultParallelThreshold}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("pipeline")
	}
	return e
}

// Run executes req. Parameter and schema errors are returned before any
// mining starts. Empty input and cancellation are reported through
// Response.Status, not as errors.
func (e *Engine) Run(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	nJobs := req.NJobs
	if nJobs == 0 {
		nJobs = 1
	}
	miner := mining.NewApriori(
		mining.WithMinSupport(req.MinSupport),
		mining.WithMaxLen(req.MaxLen),
		mining.WithNJobs(nJobs),
		mining.WithParallelThreshold(e.parallelThreshold),
		mining.WithLogger(e.logger.With(log.StageKey, "mining.apriori")),
	)
	if err := miner.Validate(); err != nil {
		return nil, err
	}

	records, err := e.load(req)
	if err != nil {
		return nil, err
	}
	txs := dataset.Group(records, e.logger.With(log.StageKey, "dataset"))

	encoded, err := preprocessing.NewTransactionEncoder().Encode(txs.ItemSets())
	if err != nil {
		return nil, err
	}
	e.logger.Debug("transactions encoded",
		log.OperationKey, log.OperationEncode,
		log.TransactionsKey, encoded.NumTransactions(),
		log.ItemsKey, encoded.NumItems(),
	)

	fi, err := miner.Fit(ctx, encoded)
	if err != nil {
		return nil, err
	}
	maximal, closed := mining.Derive(fi)
	e.logger.Debug("families derived",
		log.OperationKey, log.OperationDerive,
		log.MaximalKey, maximal.Len(),
		log.ClosedKey, closed.Len(),
	)

	load := txs.Report()
	resp := &Response{
		Status:   fi.Status(),
		Load:     load,
		Summary:  metrics.Summarize(fi),
		Frequent: report.NewTable("Frequent", fi),
		Maximal:  report.NewTable("Maximal", maximal),
		Closed:   report.NewTable("Closed", closed),
		Itemsets: fi,
	}
	if req.Query != nil {
		rec := recommend.New(fi, recommend.WithLogger(e.logger)).Suggest(*req.Query)
		resp.Recommendation = &rec
	}
	resp.Stats = Stats{
		Rows:         load.Rows,
		Dropped:      load.Dropped,
		Transactions: encoded.NumTransactions(),
		Items:        encoded.NumItems(),
		MinSupport:   req.MinSupport,
		Frequent:     fi.Len(),
		Maximal:      maximal.Len(),
		Closed:       closed.Len(),
		DurationMs:   time.Since(start).Milliseconds(),
	}

	e.logger.Info("pipeline complete",
		log.StatusKey, resp.Status.String(),
		log.TransactionsKey, resp.Stats.Transactions,
		log.ItemsKey, resp.Stats.Items,
		log.FrequentKey, resp.Stats.Frequent,
		log.MaximalKey, resp.Stats.Maximal,
		log.ClosedKey, resp.Stats.Closed,
		log.DurationMsKey, resp.Stats.DurationMs,
	)
	return resp, nil
}

func (e *Engine) load(req Request) ([]dataset.Record, error) {
	if req.Source == nil {
		return req.Records, nil
	}
	if req.Records != nil {
		return nil, errors.NewValidationError("source", "set either Records or Source, not both", nil)
	}
	schema := req.Schema
	if len(schema.KeyColumns) == 0 && schema.ItemColumn == "" {
		schema = dataset.DefaultSchema()
	}
	var opts []dataset.ReadOption
	if req.Delimiter != 0 {
		opts = append(opts, dataset.WithDelimiter(req.Delimiter))
	}
	records, err := dataset.ReadCSV(req.Source, schema, opts...)
	if err != nil {
		e.logger.Error("load failed", err, log.OperationKey, log.OperationLoad, log.GroupByKey, schema.KeyColumns)
		return nil, err
	}
	return records, nil
}
