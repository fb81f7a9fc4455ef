package pg

import (
	"context"
	"errors"

	"currency-gateway/internal/application"
	"currency-gateway/internal/domain"
	"currency-gateway/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

var _ application.AssetRepo = (*AssetRepo)(nil)

type AssetRepo struct{ db *DB }

func NewAssetRepo(db *DB) *AssetRepo { return &AssetRepo{db: db} }

func (r *AssetRepo) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	const up = `UPDATE product SET price = $1 WHERE symbol = $2`
	log := logx.WithFields(ctx).With(
		zap.String("repo", "asset"),
		zap.String("operation", "UpdatePrice"),
		zap.String("sql", up),
		zap.String("symbol", symbol),
	)
	log.Info("sql.exec_start")
	tag, err := conn(ctx, r.db.Pool).Exec(ctx, up, price, symbol)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *AssetRepo) Insert(ctx context.Context, a domain.Asset) error {
	const ins = `
        INSERT INTO product (symbol, price, "productType", name)
        VALUES ($1, $2, $3, $4)`
	log := logx.WithFields(ctx).With(
		zap.String("repo", "asset"),
		zap.String("operation", "Insert"),
		zap.String("sql", ins),
		zap.String("symbol", a.Symbol),
	)
	log.Info("sql.exec_start")
	tag, err := conn(ctx, r.db.Pool).Exec(ctx, ins, a.Symbol, a.Price, a.ProductType, a.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Warn("sql.exec_duplicate", zap.String("constraint", pgErr.ConstraintName))
			return application.ErrDuplicate
		}
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}
