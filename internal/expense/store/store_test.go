package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pocketdash/pocketdash/internal/expense"
	"github.com/pocketdash/pocketdash/internal/expense/store"
	"github.com/pocketdash/pocketdash/internal/kv"
)

func sameData(t *testing.T, want, got *expense.Data) {
	t.Helper()

	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)

	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)

	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestStore_FirstLoadSeedsStorage(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "")

	data := s.Load(ctx)
	sameData(t, expense.DefaultData(), data)

	raw, err := blobs.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// A second load now comes from the blob, not the seed path.
	sameData(t, expense.DefaultData(), s.Load(ctx))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory(), "roundtrip")

	data := s.Load(ctx)
	data.Balance = decimal.RequireFromString("123.45")
	data.User.Name = "Ada"
	data.Transactions = append([]expense.Transaction{{
		ID:          "tx-100",
		Type:        expense.TypeExpense,
		Category:    "Food",
		Amount:      decimal.RequireFromString("9.99"),
		Description: "Coffee",
		Date:        data.Transactions[0].Date,
	}}, data.Transactions...)

	require.NoError(t, s.Save(ctx, data))
	sameData(t, data, s.Load(ctx))
}

func TestStore_CorruptBlobFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "corrupt")

	require.NoError(t, blobs.Set(ctx, "corrupt", []byte("{not json")))

	data := s.Load(ctx)
	sameData(t, expense.DefaultData(), data)

	// The dataset stays usable: a subsequent save overwrites the bad
	// blob and loads cleanly again.
	require.NoError(t, s.Save(ctx, data))
	sameData(t, expense.DefaultData(), s.Load(ctx))
}

func TestStore_CorruptBlobCopiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "corrupt")

	require.NoError(t, blobs.Set(ctx, "corrupt", []byte("[]")))

	first := s.Load(ctx)
	first.User.Name = "tampered"
	first.Goals[0].Current = decimal.NewFromInt(1)

	sameData(t, expense.DefaultData(), s.Load(ctx))
}

func TestStore_LoadAcceptsBareNumberAmounts(t *testing.T) {
	// Blobs written by older clients carry decimals as JSON numbers.
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "legacy")

	raw := []byte(`{
		"user": {"name": "Ada", "creditScore": 700, "tier": "Free"},
		"balance": 1000.5,
		"monthlyBudget": 200,
		"transactions": [],
		"goals": []
	}`)
	require.NoError(t, blobs.Set(ctx, "legacy", raw))

	data := s.Load(ctx)
	assert.Equal(t, "Ada", data.User.Name)
	assert.True(t, data.Balance.Equal(decimal.RequireFromString("1000.5")))
	assert.True(t, data.MonthlyBudget.Equal(decimal.NewFromInt(200)))
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "reset")

	data := s.Load(ctx)
	data.Balance = decimal.Zero
	require.NoError(t, s.Save(ctx, data))

	first := s.Reset(ctx)
	sameData(t, expense.DefaultData(), first)
	sameData(t, expense.DefaultData(), s.Load(ctx))

	second := s.Reset(ctx)
	first.Goals[0].Current = decimal.NewFromInt(999999)
	first.User.Name = "tampered"

	sameData(t, expense.DefaultData(), second)
}

func TestStore_Available(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemory()
	s := store.New(blobs, "avail")

	assert.True(t, s.Available(ctx))

	// The probe leaves no residue.
	assert.Equal(t, 0, blobs.Len())
}

func TestStore_Available_WriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := kv.NewMockStore(ctrl)
	blobs.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	s := store.New(blobs, "avail")
	assert.False(t, s.Available(context.Background()))
}

func TestStore_Available_DeleteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := kv.NewMockStore(ctrl)
	blobs.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	blobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))

	s := store.New(blobs, "avail")
	assert.False(t, s.Available(context.Background()))
}

func TestStore_SaveErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := kv.NewMockStore(ctrl)
	blobs.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	s := store.New(blobs, "full")
	err := s.Save(context.Background(), expense.DefaultData())
	assert.Error(t, err)
}

func TestStore_LoadErrorFallsBackToDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := kv.NewMockStore(ctrl)
	blobs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("io error"))

	s := store.New(blobs, "broken")
	sameData(t, expense.DefaultData(), s.Load(context.Background()))
}
