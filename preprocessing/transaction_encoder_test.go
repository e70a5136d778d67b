package preprocessing

import (
	"reflect"
	"testing"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func sampleBaskets() [][]string {
	return [][]string{
		{"bread", "milk"},
		{"beer", "bread", "diapers", "eggs"},
		{"beer", "cola", "diapers", "milk"},
		{"beer", "bread", "diapers", "milk"},
		{"bread", "cola", "diapers", "milk"},
	}
}

func TestTransactionEncoder_FitTransform(t *testing.T) {
	enc := NewTransactionEncoder()
	X, err := enc.FitTransform(sampleBaskets())
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	wantCols := []string{"beer", "bread", "cola", "diapers", "eggs", "milk"}
	if !reflect.DeepEqual(enc.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", enc.Columns, wantCols)
	}

	r, c := X.Dims()
	if r != 5 || c != 6 {
		t.Fatalf("Dims = (%d, %d), want (5, 6)", r, c)
	}

	// 行の合計 = トランザクション内の商品数
	wantRowSums := []float64{2, 4, 4, 4, 4}
	for i, want := range wantRowSums {
		if got := mat.Sum(X.RowView(i)); got != want {
			t.Errorf("row %d sum = %v, want %v", i, got, want)
		}
	}

	// 列の合計 = 商品の出現回数
	wantColSums := map[string]float64{"beer": 3, "bread": 4, "cola": 2, "diapers": 4, "eggs": 1, "milk": 4}
	for name, want := range wantColSums {
		j, ok := enc.ColumnIndex(name)
		if !ok {
			t.Fatalf("column %q missing", name)
		}
		if got := mat.Sum(X.ColView(j)); got != want {
			t.Errorf("column %q sum = %v, want %v", name, got, want)
		}
	}
}

func TestTransactionEncoder_InverseTransform(t *testing.T) {
	enc := NewTransactionEncoder()
	baskets := sampleBaskets()
	X, err := enc.FitTransform(baskets)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	got, err := enc.InverseTransform(X)
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}
	if !reflect.DeepEqual(got, baskets) {
		t.Errorf("InverseTransform = %v, want %v", got, baskets)
	}

	bad := mat.NewDense(1, 3, nil)
	_, err = enc.InverseTransform(bad)
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("expected DimensionError, got %v", err)
	}
}

func TestTransactionEncoder_NotFitted(t *testing.T) {
	enc := NewTransactionEncoder()
	if enc.IsFitted() {
		t.Fatal("new encoder must not be fitted")
	}

	_, err := enc.Transform([][]string{{"milk"}})
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("Transform before Fit: expected NotFittedError, got %v", err)
	}

	_, err = enc.InverseTransform(mat.NewDense(1, 1, nil))
	if !errors.As(err, &nfErr) {
		t.Errorf("InverseTransform before Fit: expected NotFittedError, got %v", err)
	}
}

func TestTransactionEncoder_UnknownItem(t *testing.T) {
	enc := NewTransactionEncoder()
	if err := enc.Fit([][]string{{"milk", "bread"}}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	_, err := enc.Transform([][]string{{"milk", "caviar"}})
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValueError, got %v", err)
	}
	if !errors.Is(err, errors.ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
}

func TestTransactionEncoder_EmptyLabel(t *testing.T) {
	enc := NewTransactionEncoder()
	err := enc.Fit([][]string{{"milk", ""}})
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValueError, got %v", err)
	}
}

func TestTransactionEncoder_EmptyInput(t *testing.T) {
	enc := NewTransactionEncoder()
	if err := enc.Fit(nil); err != nil {
		t.Fatalf("Fit(nil) failed: %v", err)
	}
	if len(enc.Columns) != 0 {
		t.Errorf("Columns = %v, want empty", enc.Columns)
	}
	_, err := enc.Transform(nil)
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	enc := NewTransactionEncoder()
	e, err := enc.Encode(sampleBaskets())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if e.NumTransactions() != 5 {
		t.Errorf("NumTransactions = %d, want 5", e.NumTransactions())
	}
	if e.NumItems() != 6 {
		t.Errorf("NumItems = %d, want 6", e.NumItems())
	}

	beer, ok := e.Index("beer")
	if !ok {
		t.Fatal("beer missing from vocabulary")
	}
	if e.Label(beer) != "beer" {
		t.Errorf("Label(%d) = %q, want beer", beer, e.Label(beer))
	}
	if got := e.TIDs(beer).IDs(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("beer tids = %v, want [1 2 3]", got)
	}

	diapers, _ := e.Index("diapers")
	both := e.TIDs(beer).Intersect(e.TIDs(diapers))
	if both.Count() != 3 {
		t.Errorf("beer∩diapers count = %d, want 3", both.Count())
	}

	// Vocabulary はコピーを返す
	v := e.Vocabulary()
	v[0] = "changed"
	if e.Label(0) != "beer" {
		t.Error("Vocabulary must return a copy")
	}

	X := e.Matrix()
	if X == nil {
		t.Fatal("Matrix returned nil")
	}
	if got := X.At(1, beer); got != 1 {
		t.Errorf("Matrix(1, beer) = %v, want 1", got)
	}
}

func TestEncode_ReusedEncoder(t *testing.T) {
	enc := NewTransactionEncoder()
	first, err := enc.Encode([][]string{{"a", "b"}, {"b"}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := enc.Encode([][]string{{"x"}}); err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}

	if got := first.Vocabulary(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Vocabulary = %v, want [a b]", got)
	}
	if _, ok := first.Index("x"); ok {
		t.Error("first encoding must not see the second vocabulary")
	}
	X := first.Matrix()
	if X == nil {
		t.Fatal("Matrix of the first encoding must survive encoder reuse")
	}
	want := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	if !mat.Equal(X, want) {
		t.Errorf("Matrix = %v, want %v", mat.Formatted(X), mat.Formatted(want))
	}
}

func TestEncode_Empty(t *testing.T) {
	e, err := NewTransactionEncoder().Encode([][]string{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if e.NumTransactions() != 0 || e.NumItems() != 0 {
		t.Errorf("got (%d, %d), want (0, 0)", e.NumTransactions(), e.NumItems())
	}
	if e.Matrix() != nil {
		t.Error("Matrix of empty encoding must be nil")
	}
}

func TestTIDSet(t *testing.T) {
	s := NewTIDSet(130)
	for _, i := range []int{0, 63, 64, 129} {
		s.Add(i)
	}
	if s.Count() != 4 {
		t.Errorf("Count = %d, want 4", s.Count())
	}
	if !s.Contains(64) || s.Contains(65) || s.Contains(200) || s.Contains(-1) {
		t.Error("Contains returned wrong membership")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []int{0, 63, 64, 129}) {
		t.Errorf("IDs = %v", got)
	}
	if s.Cap() != 130 {
		t.Errorf("Cap = %d, want 130", s.Cap())
	}

	o := NewTIDSet(130)
	o.Add(63)
	o.Add(100)
	if got := s.Intersect(o).IDs(); !reflect.DeepEqual(got, []int{63}) {
		t.Errorf("Intersect = %v, want [63]", got)
	}
	// Intersect は元の集合を変更しない
	if s.Count() != 4 {
		t.Error("Intersect mutated receiver")
	}
}
