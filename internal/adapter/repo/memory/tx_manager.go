package memory

import "context"

// TxManager serializes whole tx bodies against each other. There is no
// rollback; callers get atomicity across repos only in the sense that no
// other transaction interleaves.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
