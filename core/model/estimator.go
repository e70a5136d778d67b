package model

// Fitted は学習状態を公開するモデルのインターフェース
type Fitted interface {
	// IsFitted はモデルが学習済みかどうかを返す
	IsFitted() bool
}
