package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/basketmine/config"
	"github.com/YuminosukeSato/basketmine/pipeline"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/YuminosukeSato/basketmine/pkg/log"
	"github.com/YuminosukeSato/basketmine/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// miningFlags are the input and Apriori flags shared by mine and suggest.
// A flag only overrides the config when it was set explicitly.
type miningFlags struct {
	minSupport float64
	maxLen     int
	jobs       int
	groupBy    []string
	itemColumn string
	delimiter  string
}

func (f *miningFlags) bind(fs *pflag.FlagSet) {
	fs.Float64Var(&f.minSupport, "min-support", 0, "minimum support in (0, 1] (default from config: 0.05)")
	fs.IntVar(&f.maxLen, "max-len", 0, "maximum itemset size, 0 for unlimited")
	fs.IntVar(&f.jobs, "jobs", 0, "support-counting workers, -1 for every CPU")
	fs.StringSliceVar(&f.groupBy, "group-by", nil, "grouping key column(s), e.g. --group-by Member_number,Date")
	fs.StringVar(&f.itemColumn, "item-column", "", "item label column")
	fs.StringVar(&f.delimiter, "delimiter", "", "CSV field delimiter")
}

func (f *miningFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("min-support") {
		cfg.Mining.MinSupport = f.minSupport
	}
	if fs.Changed("max-len") {
		cfg.Mining.MaxLen = f.maxLen
	}
	if fs.Changed("jobs") {
		cfg.Mining.Jobs = f.jobs
	}
	if fs.Changed("group-by") {
		cfg.Data.GroupBy = f.groupBy
	}
	if fs.Changed("item-column") {
		cfg.Data.ItemColumn = f.itemColumn
	}
	if fs.Changed("delimiter") {
		cfg.Data.Delimiter = f.delimiter
	}
	return cfg.Validate()
}

type mineOptions struct {
	mining  miningFlags
	out     string
	formats []string
	chart   string
	metrics string
	query   string
	top     int
}

func newMineCmd(root *rootOptions) *cobra.Command {
	opts := &mineOptions{}
	cmd := &cobra.Command{
		Use:   "mine <file.csv>",
		Short: "Mine frequent, maximal and closed itemsets",
		Long: `Mine reads the transaction log, groups it into baskets and writes the
frequent, maximal and closed itemset tables (frequent_itemsets.csv, ...) to
the output directory. A summary and the top rows of each table are printed.`,
		Example: `  basketmine mine Groceries_dataset.csv --min-support 0.05
  basketmine mine Groceries_dataset.csv --group-by Member_number,Date --min-support 0.002 --format csv,json --chart top.png
  basketmine mine Groceries_dataset.csv --query "whole milk"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd.Flags(), cfg); err != nil {
				return err
			}

			var query *string
			if cmd.Flags().Changed("query") {
				query = &opts.query
			}
			resp, err := runPipeline(cmd.Context(), args[0], cfg, query)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.summary(args[0], resp)
			for _, t := range resp.Tables() {
				p.table(t, cfg.Output.Top)
			}
			if resp.Recommendation != nil {
				p.recommendation(*resp.Recommendation)
			}
			return export(cfg, resp, p)
		},
	}
	opts.mining.bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.out, "out", "", "output directory (default from config: .)")
	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "export formats: csv, json")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "write a top-itemsets bar chart to this .png/.svg path")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "write Prometheus textfile metrics to this path")
	cmd.Flags().StringVar(&opts.query, "query", "", "also suggest companions for this item")
	cmd.Flags().IntVar(&opts.top, "top", 0, "rows to print and chart per table (default from config: 10)")
	return cmd
}

func (o *mineOptions) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("out") {
		cfg.Output.Dir = o.out
	}
	if fs.Changed("format") {
		cfg.Output.Formats = o.formats
	}
	if fs.Changed("chart") {
		cfg.Output.Chart = o.chart
	}
	if fs.Changed("metrics") {
		cfg.Output.Metrics = o.metrics
	}
	if fs.Changed("top") {
		cfg.Output.Top = o.top
	}
	return o.mining.apply(fs, cfg)
}

// runPipeline reads path fully and runs the engine with cfg.
func runPipeline(ctx context.Context, path string, cfg *config.Config, query *string) (*pipeline.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	logger := log.GetLoggerWithName("pipeline")
	logger.Info("mining transaction log",
		log.PathKey, path,
		log.MinSupportKey, cfg.Mining.MinSupport,
		log.GroupByKey, cfg.Data.GroupBy,
	)
	return pipeline.New(pipeline.WithLogger(logger)).Run(ctx, pipeline.Request{
		Source:     f,
		Schema:     cfg.Schema(),
		Delimiter:  cfg.Delimiter(),
		MinSupport: cfg.Mining.MinSupport,
		MaxLen:     cfg.Mining.MaxLen,
		NJobs:      cfg.Mining.Jobs,
		Query:      query,
	})
}

// export writes the tables, the chart and the metrics file as configured.
func export(cfg *config.Config, resp *pipeline.Response, p *printer) error {
	logger := log.GetLoggerWithName("report")

	if len(cfg.Output.Formats) > 0 {
		paths, err := report.Export(cfg.Output.Dir, cfg.Output.Formats, logger, resp.Tables()...)
		if err != nil {
			return err
		}
		p.written(paths...)
	}

	if cfg.Output.Chart != "" {
		if resp.Frequent.Len() == 0 {
			logger.Warn("no frequent itemsets, chart skipped", log.PathKey, cfg.Output.Chart)
		} else {
			if err := os.MkdirAll(filepath.Dir(cfg.Output.Chart), 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", filepath.Dir(cfg.Output.Chart))
			}
			if err := report.PlotTop(resp.Frequent, cfg.Output.Top, cfg.Output.Chart); err != nil {
				return err
			}
			p.written(cfg.Output.Chart)
		}
	}

	if cfg.Output.Metrics != "" {
		if err := report.WriteMetrics(cfg.Output.Metrics, resp.Stats); err != nil {
			return err
		}
		p.written(cfg.Output.Metrics)
	}
	return nil
}
