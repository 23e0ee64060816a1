package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// 一意制約違反（ISBN・documento・emailなど）
	ErrConflict = errors.New("conflict")

	// 外部キー違反（参照先が存在しない／参照されている）
	ErrReferenced = errors.New("referenced")
)

// 一覧取得のページング
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
