package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/basketmine/pipeline"
	"github.com/YuminosukeSato/basketmine/recommend"
	"github.com/YuminosukeSato/basketmine/report"
	"github.com/fatih/color"
)

// printer writes the human-readable CLI output.
type printer struct {
	w io.Writer

	cyan   func(a ...interface{}) string
	yellow func(a ...interface{}) string
	green  func(a ...interface{}) string
	gray   func(a ...interface{}) string
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:      w,
		cyan:   color.New(color.FgCyan, color.Bold).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		gray:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

func (p *printer) summary(source string, resp *pipeline.Response) {
	s := resp.Stats
	fmt.Fprintf(p.w, "\n%s\n", p.cyan("=== basketmine ==="))
	fmt.Fprintf(p.w, "  Source:       %s\n", source)
	fmt.Fprintf(p.w, "  Rows:         %d (%d dropped)\n", s.Rows, s.Dropped)
	fmt.Fprintf(p.w, "  Transactions: %d\n", s.Transactions)
	fmt.Fprintf(p.w, "  Items:        %d\n", s.Items)
	fmt.Fprintf(p.w, "  Min support:  %g\n", s.MinSupport)
	fmt.Fprintf(p.w, "  Itemsets:     %d frequent, %d maximal, %d closed\n", s.Frequent, s.Maximal, s.Closed)
	if resp.Summary.Count > 0 {
		fmt.Fprintf(p.w, "  Support:      min %.4f  mean %.4f  max %.4f  (largest itemset: %d)\n",
			resp.Summary.MinSupport, resp.Summary.MeanSupport, resp.Summary.MaxSupport, resp.Summary.MaxLength)
	}

	switch resp.Status {
	case pipeline.StatusEmptyInput:
		fmt.Fprintf(p.w, "  %s\n", p.yellow("No transactions or items to mine."))
	case pipeline.StatusCancelled:
		fmt.Fprintf(p.w, "  %s\n", p.yellow("Interrupted: showing completed levels only."))
	}
	fmt.Fprintln(p.w)
}

func (p *printer) table(t report.Table, top int) {
	fmt.Fprintf(p.w, "%s %s\n", p.cyan(t.Name+" itemsets"), p.gray(fmt.Sprintf("(%d)", t.Len())))
	if t.Len() == 0 {
		fmt.Fprintf(p.w, "  %s\n\n", p.gray("none"))
		return
	}
	for _, r := range t.Head(top) {
		fmt.Fprintf(p.w, "  %s  %s\n", p.green(fmt.Sprintf("%.4f", r.Support)), r.Itemset)
	}
	if rest := t.Len() - len(t.Head(top)); rest > 0 {
		fmt.Fprintf(p.w, "  %s\n", p.gray(fmt.Sprintf("... %d more", rest)))
	}
	fmt.Fprintln(p.w)
}

func (p *printer) recommendation(rec recommend.Recommendation) {
	fmt.Fprintf(p.w, "%s %q\n", p.cyan("Companions of"), rec.Query)
	switch {
	case !rec.Found:
		fmt.Fprintf(p.w, "  %s\n", p.yellow("item not found in the transaction log"))
	case len(rec.Items) == 0:
		fmt.Fprintf(p.w, "  %s\n", p.gray("no frequent companions"))
	default:
		for _, c := range rec.Items {
			fmt.Fprintf(p.w, "  %s  %s\n", p.green(fmt.Sprintf("%.4f", c.Support)), c.Item)
		}
	}
	fmt.Fprintln(p.w)
}

func (p *printer) written(paths ...string) {
	for _, path := range paths {
		fmt.Fprintf(p.w, "%s %s\n", p.green("wrote"), path)
	}
}
