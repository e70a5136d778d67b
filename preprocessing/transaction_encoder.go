package preprocessing

import (
	"fmt"
	"sort"

	"github.com/YuminosukeSato/basketmine/core/model"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TransactionEncoder はトランザクション（商品ラベルの集合）を 0/1 の出現行列に変換する
// 行 = トランザクション、列 = 語彙中の商品。語彙はラベルの辞書順で、列番号は安定している
type TransactionEncoder struct {
	state *model.StateManager

	// Columns は学習された語彙（列番号順の商品ラベル）
	Columns []string

	index map[string]int
}

var _ model.BasketTransformer = (*TransactionEncoder)(nil)

// NewTransactionEncoder は新しいTransactionEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewTransactionEncoder()
//	X, err := enc.FitTransform([][]string{{"milk", "bread"}, {"milk"}})
func NewTransactionEncoder() *TransactionEncoder {
	return &TransactionEncoder{state: model.NewStateManager()}
}

// Fit はトランザクション集合から語彙を構築する
// 空の入力も受け付け、その場合の語彙は空になる
func (e *TransactionEncoder) Fit(txs [][]string) error {
	seen := make(map[string]struct{})
	for _, tx := range txs {
		for _, item := range tx {
			if item == "" {
				return errors.NewValueError("TransactionEncoder.Fit", "item labels must not be empty")
			}
			seen[item] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for item := range seen {
		columns = append(columns, item)
	}
	sort.Strings(columns)

	e.Columns = columns
	e.index = make(map[string]int, len(columns))
	for i, c := range columns {
		e.index[c] = i
	}
	e.state.SetFitted(len(txs), len(columns))
	return nil
}

// IsFitted は語彙が構築済みかどうかを返す
func (e *TransactionEncoder) IsFitted() bool {
	return e.state.IsFitted()
}

// ColumnIndex は商品ラベルの列番号を返す
func (e *TransactionEncoder) ColumnIndex(item string) (int, bool) {
	i, ok := e.index[item]
	return i, ok
}

// Transform は学習済みの語彙を使って出現行列を作る
// セル (i, j) はトランザクション i が商品 j を含むとき 1、そうでなければ 0
//
// 戻り値:
//   - *mat.Dense: 出現行列（len(txs) × len(Columns)）
//   - error: 未学習、未知のラベル、または空の入力の場合
func (e *TransactionEncoder) Transform(txs [][]string) (*mat.Dense, error) {
	if err := e.state.RequireFitted("TransactionEncoder", "Transform"); err != nil {
		return nil, err
	}
	// gonum は 0 次元の行列を作れない
	if len(txs) == 0 || len(e.Columns) == 0 {
		return nil, errors.NewModelError("TransactionEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	X := mat.NewDense(len(txs), len(e.Columns), nil)
	for i, tx := range txs {
		for _, item := range tx {
			j, ok := e.index[item]
			if !ok {
				return nil, errors.Mark(
					errors.NewValueError("TransactionEncoder.Transform", fmt.Sprintf("unknown item %q", item)),
					errors.ErrUnknownItem,
				)
			}
			X.Set(i, j, 1)
		}
	}
	return X, nil
}

// FitTransform は語彙を構築し、同じデータを変換する
func (e *TransactionEncoder) FitTransform(txs [][]string) (*mat.Dense, error) {
	if err := e.Fit(txs); err != nil {
		return nil, err
	}
	return e.Transform(txs)
}

// InverseTransform は出現行列をトランザクション（ラベルの集合）に戻す
// 0 以外のセルを「含む」とみなす
func (e *TransactionEncoder) InverseTransform(X mat.Matrix) ([][]string, error) {
	if err := e.state.RequireFitted("TransactionEncoder", "InverseTransform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != len(e.Columns) {
		return nil, errors.NewDimensionError("TransactionEncoder.InverseTransform", len(e.Columns), c, 1)
	}

	out := make([][]string, r)
	for i := 0; i < r; i++ {
		items := make([]string, 0)
		for j := 0; j < c; j++ {
			if X.At(i, j) != 0 {
				items = append(items, e.Columns[j])
			}
		}
		out[i] = items
	}
	return out, nil
}

// Encode は語彙を構築し、商品ごとのトランザクションID集合（転置インデックス）を作る
// Apriori の支持度計算はこの転置インデックスを使う
func (e *TransactionEncoder) Encode(txs [][]string) (*Encoded, error) {
	if err := e.Fit(txs); err != nil {
		return nil, err
	}

	n := len(txs)
	tids := make([]TIDSet, len(e.Columns))
	for j := range tids {
		tids[j] = NewTIDSet(n)
	}
	for i, tx := range txs {
		for _, item := range tx {
			tids[e.index[item]].Add(i)
		}
	}

	// 語彙と索引は encoder の再学習から独立させる
	vocab := append([]string(nil), e.Columns...)
	index := make(map[string]int, len(vocab))
	for j, label := range vocab {
		index[label] = j
	}
	return &Encoded{
		vocabulary: vocab,
		index:      index,
		tids:       tids,
		n:          n,
	}, nil
}

// Encoded はエンコード結果：語彙、トランザクション数、商品ごとのTIDSet
// 生成後は読み取り専用
type Encoded struct {
	vocabulary []string
	index      map[string]int
	tids       []TIDSet
	n          int
}

// Vocabulary は列番号順の商品ラベルを返す（コピー）
func (e *Encoded) Vocabulary() []string {
	return append([]string(nil), e.vocabulary...)
}

// Label は列番号に対応する商品ラベルを返す
func (e *Encoded) Label(item int) string {
	return e.vocabulary[item]
}

// Index は商品ラベルの列番号を返す
func (e *Encoded) Index(label string) (int, bool) {
	i, ok := e.index[label]
	return i, ok
}

// NumTransactions はトランザクション数を返す
func (e *Encoded) NumTransactions() int {
	return e.n
}

// NumItems は語彙のサイズを返す
func (e *Encoded) NumItems() int {
	return len(e.vocabulary)
}

// TIDs は商品 item を含むトランザクションのID集合を返す
func (e *Encoded) TIDs(item int) TIDSet {
	return e.tids[item]
}

// Matrix は自身の TIDSet から出現行列を組み立てる。トランザクションまたは語彙が空の場合は nil
func (e *Encoded) Matrix() *mat.Dense {
	// gonum は 0 次元の行列を作れない
	if e.n == 0 || len(e.vocabulary) == 0 {
		return nil
	}
	X := mat.NewDense(e.n, len(e.vocabulary), nil)
	for j, tids := range e.tids {
		for _, i := range tids.IDs() {
			X.Set(i, j, 1)
		}
	}
	return X
}
