package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through use cases. Its concrete
// type is infra-defined (pgx.Tx for Postgres); repositories must gracefully
// accept NoTX for the non-transactional path.
type Tx interface{}

// NoTX marks the non-transactional path.
var NoTX Tx

// TransactionManager executes fn inside one database transaction, handing the
// tx handle back through the Tx argument so repository calls made inside fn
// share the same transaction (and can use SELECT ... FOR UPDATE or advisory
// locks). fn returning an error rolls the transaction back.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
