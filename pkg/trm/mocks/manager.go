package mocks

import (
	"context"

	"github.com/strumhaus/order-service/pkg/trm"
)

// FakeManager runs callbacks directly, without a database. Err, when set,
// is returned before the callback runs.
type FakeManager struct {
	Err error
}

func (f FakeManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	if f.Err != nil {
		return nil, nil, f.Err
	}
	return ctx, noopTx{}, nil
}

func (f FakeManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if f.Err != nil {
		return f.Err
	}
	return callback(ctx)
}

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
