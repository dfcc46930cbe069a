package repository

import "context"

// Store hands out repositories bound to one connection or transaction.
type Store interface {
	Groups() GroupRepository
	Labels() LabelRepository
	Templates() TemplateRepository
	Users() UserRepository
}

// TxRunner executes fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}
