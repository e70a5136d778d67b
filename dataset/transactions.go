package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/YuminosukeSato/basketmine/pkg/log"
)

// Transaction is the duplicate-free, sorted set of items seen for one
// grouping key. Transactions are immutable once grouped.
type Transaction struct {
	Key   string
	Items []string
}

// LoadReport summarizes one grouping pass.
type LoadReport struct {
	// Rows is the number of records received.
	Rows int `json:"rows"`
	// Dropped counts records with an empty item label or an empty key.
	Dropped      int `json:"dropped"`
	Transactions int `json:"transactions"`
}

// Transactions is the ordered output of Group.
type Transactions struct {
	txs    []Transaction
	report LoadReport
}

// Len returns the number of transactions.
func (t *Transactions) Len() int {
	return len(t.txs)
}

// At returns the i-th transaction. Callers must not modify its Items.
func (t *Transactions) At(i int) Transaction {
	return t.txs[i]
}

// Report returns what happened while grouping.
func (t *Transactions) Report() LoadReport {
	return t.report
}

// ItemSets returns the item lists of every transaction in order, the shape
// the occurrence encoder consumes.
func (t *Transactions) ItemSets() [][]string {
	out := make([][]string, len(t.txs))
	for i, tx := range t.txs {
		out[i] = tx.Items
	}
	return out
}

// Group collects records into one transaction per distinct key, in order of
// each key's first appearance. Repeated items within a key collapse to one.
// Keys and labels are trimmed of surrounding whitespace first; records whose
// item label or key is then empty are dropped, counted, and
// raised as DroppedRowWarning; they never fail the load. A nil logger logs
// nothing.
func Group(records []Record, logger log.Logger) *Transactions {
	if logger == nil {
		logger = log.Discard()
	}

	order := make([]string, 0)
	sets := make(map[string]map[string]struct{})
	report := LoadReport{Rows: len(records)}

	for _, r := range records {
		r.Key = strings.TrimSpace(r.Key)
		r.Item = strings.TrimSpace(r.Item)
		switch {
		case r.Item == "":
			report.Dropped++
			errors.Warn(errors.NewDroppedRowWarning(r.Line, r.Key, "empty item label"))
			continue
		case r.Key == "":
			report.Dropped++
			errors.Warn(errors.NewDroppedRowWarning(r.Line, r.Key, "empty grouping key"))
			continue
		}
		set, ok := sets[r.Key]
		if !ok {
			set = make(map[string]struct{})
			sets[r.Key] = set
			order = append(order, r.Key)
		}
		set[r.Item] = struct{}{}
	}

	txs := make([]Transaction, len(order))
	for i, key := range order {
		items := make([]string, 0, len(sets[key]))
		for item := range sets[key] {
			items = append(items, item)
		}
		sort.Strings(items)
		txs[i] = Transaction{Key: key, Items: items}
	}
	report.Transactions = len(txs)

	logger.Info("grouped transaction log",
		log.OperationKey, log.OperationLoad,
		log.RowsKey, report.Rows,
		log.DroppedKey, report.Dropped,
		log.TransactionsKey, report.Transactions,
	)
	return &Transactions{txs: txs, report: report}
}

// FromItemSets builds transactions directly from in-memory baskets, keyed
// by position. Unlike Group, empty baskets are kept as empty transactions.
func FromItemSets(baskets [][]string) *Transactions {
	txs := make([]Transaction, len(baskets))
	report := LoadReport{Transactions: len(baskets)}
	for i, basket := range baskets {
		report.Rows += len(basket)
		set := make(map[string]struct{}, len(basket))
		for _, item := range basket {
			item = strings.TrimSpace(item)
			if item == "" {
				report.Dropped++
				continue
			}
			set[item] = struct{}{}
		}
		items := make([]string, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		sort.Strings(items)
		txs[i] = Transaction{Key: "#" + strconv.Itoa(i), Items: items}
	}
	return &Transactions{txs: txs, report: report}
}
