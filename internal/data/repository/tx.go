package repository

import (
	"context"
	"errors"
	"fmt"

	"kickstreet/pkg/database"

	"go.uber.org/zap"
)

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type pgxTxRunner struct {
	db  database.PgxIface
	log *zap.Logger
}

// WithinTx commits when fn returns nil and rolls back otherwise. The repositories passed
// to fn must not escape the callback.
func (r *pgxTxRunner) WithinTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
				err = errors.Join(err, rbErr)
			}
		}
	}()

	txRepo := newRepository(tx, r.log)
	txRepo.Tx = nestedTx{repo: txRepo}

	if err = fn(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// nestedTx joins the enclosing transaction instead of opening a new one.
type nestedTx struct {
	repo *Repository
}

func (n nestedTx) WithinTx(_ context.Context, fn func(repo *Repository) error) error {
	return fn(n.repo)
}
