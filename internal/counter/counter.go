// Package counter はプロセス内で共有するリクエストカウンターを提供します。
//
// 値はプロセス起動時に0から始まり、永続化されません。
// 再起動するとカウントはリセットされます。
package counter

import "go.uber.org/atomic"

// Counter は単調増加する64bitカウンター
// ゼロ値のまま使用できる
type Counter struct {
	value atomic.Uint64
}

// New は0から始まるCounterを作成する
func New() *Counter {
	return &Counter{}
}

// Next はカウンターをアトミックに1つ進め、進めた後の値を返す
// 最初の呼び出しは1を返す
func (c *Counter) Next() uint64 {
	return c.value.Inc()
}

// Value は現在の値を返す
func (c *Counter) Value() uint64 {
	return c.value.Load()
}
