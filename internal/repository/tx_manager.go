package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Sales() SaleRepository
	SaleItems() SaleItemRepository
	Inventory() InventoryRepository
	Books() BookRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したらrollback、nilならcommit。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
