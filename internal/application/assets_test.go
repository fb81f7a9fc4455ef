package application

import (
	"context"
	"testing"

	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seededRepo() *fakeAssetRepo {
	return &fakeAssetRepo{rows: map[string]domain.Asset{
		"BTC": {Symbol: "BTC", Price: decimal.RequireFromString("100"), ProductType: "crypto", Name: "Bitcoin"},
	}}
}

func Test_UpdateAssetPrice(t *testing.T) {
	t.Parallel()
	repo := seededRepo()
	uow := &countingUoW{}
	svc := newService(usdTable(), &fakeCryptoProvider{}, repo, WithUnitOfWork(uow))

	upd, err := svc.UpdateAssetPrice(context.Background(), "BTC", "123.45", nil)
	require.NoError(t, err)
	require.Equal(t, "BTC", upd.Symbol)
	require.Equal(t, "123.45", upd.NewPrice.String())
	require.Equal(t, "123.45", repo.rows["BTC"].Price.String())
	require.Equal(t, 1, uow.calls)
}

func Test_UpdateAssetPrice_NonNumeric(t *testing.T) {
	t.Parallel()
	uow := &countingUoW{}
	svc := newService(usdTable(), &fakeCryptoProvider{}, seededRepo(), WithUnitOfWork(uow))

	_, err := svc.UpdateAssetPrice(context.Background(), "BTC", "abc", nil)
	gerr := requireKind(t, err, KindInvalidInput)
	require.Equal(t, "new_price must be numeric", gerr.Detail)
	require.Zero(t, uow.calls)

	_, err = svc.UpdateAssetPrice(context.Background(), "BTC", "-1", nil)
	gerr = requireKind(t, err, KindInvalidInput)
	require.Equal(t, "new_price must be non-negative", gerr.Detail)
}

func Test_AssetPrice_OutOfRange(t *testing.T) {
	t.Parallel()
	uow := &countingUoW{}
	repo := seededRepo()
	svc := newService(usdTable(), &fakeCryptoProvider{}, repo, WithUnitOfWork(uow))

	for _, in := range []string{"1e50000000", "1e-50000000", "123456789012345678901"} {
		_, err := svc.UpdateAssetPrice(context.Background(), "BTC", in, nil)
		gerr := requireKind(t, err, KindInvalidInput)
		require.Equal(t, "new_price is out of range", gerr.Detail)

		_, err = svc.InsertAsset(context.Background(), "ETH", in, "crypto", "Ether", nil)
		gerr = requireKind(t, err, KindInvalidInput)
		require.Equal(t, "price is out of range", gerr.Detail)
	}
	require.Zero(t, uow.calls)
}

func Test_UpdateAssetPrice_UnknownSymbol(t *testing.T) {
	t.Parallel()
	svc := newService(usdTable(), &fakeCryptoProvider{}, seededRepo())

	_, err := svc.UpdateAssetPrice(context.Background(), "DOGE", "1", nil)
	requireKind(t, err, KindAssetNotFound)
	require.ErrorIs(t, err, ErrAssetNotFound)
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_UpdateAssetPrice_StoreError(t *testing.T) {
	t.Parallel()
	svc := newService(usdTable(), &fakeCryptoProvider{}, &fakeAssetRepo{err: ErrRepo})

	_, err := svc.UpdateAssetPrice(context.Background(), "BTC", "1", nil)
	requireKind(t, err, KindStoreUnavailable)
	require.ErrorIs(t, err, ErrRepo)
}

func Test_InsertAsset(t *testing.T) {
	t.Parallel()
	repo := &fakeAssetRepo{}
	svc := newService(usdTable(), &fakeCryptoProvider{}, repo)

	a, err := svc.InsertAsset(context.Background(), "ETH", "2500.5", "crypto", "Ether", nil)
	require.NoError(t, err)
	require.Equal(t, "ETH", a.Symbol)
	require.Equal(t, "2500.5", a.Price.String())
	require.Contains(t, repo.rows, "ETH")
}

func Test_InsertAsset_Duplicate(t *testing.T) {
	t.Parallel()
	svc := newService(usdTable(), &fakeCryptoProvider{}, seededRepo())

	_, err := svc.InsertAsset(context.Background(), "BTC", "1", "crypto", "Bitcoin", nil)
	requireKind(t, err, KindDuplicateAsset)
}

func Test_InsertAsset_Failures(t *testing.T) {
	t.Parallel()
	svc := newService(usdTable(), &fakeCryptoProvider{}, &fakeAssetRepo{err: ErrRepo})

	_, err := svc.InsertAsset(context.Background(), "ETH", "1", "crypto", "Ether", nil)
	requireKind(t, err, KindInsertFailed)

	_, err = svc.InsertAsset(context.Background(), "ETH", "x", "crypto", "Ether", nil)
	gerr := requireKind(t, err, KindInvalidInput)
	require.Equal(t, "price must be numeric", gerr.Detail)

	_, err = svc.InsertAsset(context.Background(), "ETH", "1", "", "Ether", nil)
	requireKind(t, err, KindInvalidInput)

	_, err = svc.InsertAsset(context.Background(), " ", "1", "crypto", "Ether", nil)
	requireKind(t, err, KindInvalidInput)
}

func Test_InsertAsset_Idempotency_Conflict(t *testing.T) {
	t.Parallel()
	idem := &fakeIdem{}
	svc := newService(usdTable(), &fakeCryptoProvider{}, &fakeAssetRepo{}, WithIdempotency(idem))
	key := "ik-1"

	_, err := svc.InsertAsset(context.Background(), "ETH", "1", "crypto", "Ether", &key)
	require.NoError(t, err)
	_, err = svc.InsertAsset(context.Background(), "SOL", "1", "crypto", "Solana", &key)
	require.ErrorIs(t, err, ErrConflict)
}

func Test_UpdateAssetPrice_ReleasesKeyOnFailure(t *testing.T) {
	t.Parallel()
	idem := &fakeIdem{}
	svc := newService(usdTable(), &fakeCryptoProvider{}, seededRepo(), WithIdempotency(idem))
	key := "ik-2"

	_, err := svc.UpdateAssetPrice(context.Background(), "DOGE", "1", &key)
	requireKind(t, err, KindAssetNotFound)
	require.Equal(t, []string{"update_asset_price:ik-2"}, idem.released)

	_, err = svc.UpdateAssetPrice(context.Background(), "BTC", "2", &key)
	require.NoError(t, err)
}

func Test_IdempotencyStoreDown(t *testing.T) {
	t.Parallel()
	svc := newService(usdTable(), &fakeCryptoProvider{}, seededRepo(), WithIdempotency(&fakeIdem{err: ErrRepo}))
	key := "ik-3"

	_, err := svc.UpdateAssetPrice(context.Background(), "BTC", "2", &key)
	requireKind(t, err, KindStoreUnavailable)
}
