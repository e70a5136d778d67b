package model

import "gonum.org/v1/gonum/mat"

// BasketTransformer はバスケット（商品ラベルの集合）と出現行列を相互に変換するインターフェース
type BasketTransformer interface {
	Fitted

	// Fit は変換に必要な語彙を学習する
	Fit(baskets [][]string) error

	// Transform はバスケットを出現行列に変換する
	Transform(baskets [][]string) (*mat.Dense, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(baskets [][]string) (*mat.Dense, error)

	// InverseTransform は出現行列をバスケットに戻す
	InverseTransform(X mat.Matrix) ([][]string, error)
}
