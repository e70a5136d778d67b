// Package basketmine mines frequent itemsets from retail transaction logs,
// designed for batch analytics jobs and embedding in backend services.
//
// A transaction log is a CSV with one row per purchased item. basketmine
// groups rows into baskets, one-hot encodes them, runs Apriori, derives the
// maximal and closed itemset families and answers "what is bought together
// with X" queries.
//
// # Features
//
//   - Apriori with tid-set intersection and CPU-parallel support counting
//   - Maximal and closed itemset derivation
//   - Exact-membership item recommendations
//   - CSV, JSON, chart and Prometheus textfile exports
//   - Cancellation via context.Context at level boundaries
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/basketmine/pipeline"
//	)
//
//	func main() {
//	    f, err := os.Open("Groceries_dataset.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer f.Close()
//
//	    query := "whole milk"
//	    resp, err := pipeline.New().Run(context.Background(), pipeline.Request{
//	        Source:     f,
//	        MinSupport: 0.05,
//	        Query:      &query,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(resp.Stats.Frequent, "frequent itemsets")
//	    fmt.Println("bought with whole milk:", resp.Recommendation.Labels())
//	}
//
// # Packages
//
//   - dataset: CSV transaction log loading and basket grouping
//   - preprocessing: TransactionEncoder and tid-sets
//   - mining: Apriori and the maximal/closed families
//   - recommend: companion item suggestions
//   - metrics: itemset family summaries
//   - report: tables, CSV/JSON writers, charts and textfile metrics
//   - pipeline: the end-to-end engine
//   - config: koanf-backed configuration
//   - core/parallel: parallel processing utilities
//   - core/model: fitted-state tracking shared by estimators
//
// The command-line tool lives in cmd/basketmine:
//
//	basketmine mine Groceries_dataset.csv --min-support 0.05 --format csv,json
//	basketmine suggest Groceries_dataset.csv "whole milk" --min-support 0.01
//
// # License
//
// basketmine is released under the MIT License.
package basketmine
