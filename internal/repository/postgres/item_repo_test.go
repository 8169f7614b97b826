package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelscan/internal/config"
	"jewelscan/internal/domain"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1, $2, $3)", placeholders(0, 3))
	assert.Equal(t, "($11, $12)", placeholders(10, 2))
}

func TestInsertStatements_ChunksLargeBatches(t *testing.T) {
	items := make([]domain.JewelleryItem, 2*maxInsertRows+1)
	for i := range items {
		items[i] = domain.JewelleryItem{Code: fmt.Sprintf("C%05d", i), ItemType: domain.ItemTypePurchase}
	}

	stmts := insertStatements(items, maxInsertRows)
	require.Len(t, stmts, 3)
	assert.Len(t, stmts[0].args, maxInsertRows*itemColumnsLen)
	assert.Len(t, stmts[2].args, itemColumnsLen)
	for _, stmt := range stmts {
		assert.LessOrEqual(t, len(stmt.args), 65535)
		assert.True(t, strings.HasPrefix(stmt.query, "INSERT INTO jewellery_items ("+itemColumns+") VALUES ($1, "))
	}

	// Placeholders restart at $1 in every statement and rows keep their order.
	assert.Contains(t, stmts[1].query, fmt.Sprintf("$%d)", maxInsertRows*itemColumnsLen))
	assert.NotContains(t, stmts[1].query, fmt.Sprintf("$%d", maxInsertRows*itemColumnsLen+1))
	assert.Equal(t, "C01000", stmts[1].args[1])
	assert.Equal(t, "C02000", stmts[2].args[1])
}

func TestInsertStatements_SingleChunk(t *testing.T) {
	stmts := insertStatements([]domain.JewelleryItem{{Code: "A"}, {Code: "B"}}, maxInsertRows)
	require.Len(t, stmts, 1)
	assert.Len(t, stmts[0].args, 2*itemColumnsLen)
	assert.True(t, strings.HasSuffix(stmts[0].query, "($11, $12, $13, $14, $15, $16, $17, $18, $19, $20)"))
}

func TestListWhere(t *testing.T) {
	where, args := listWhere(domain.ItemFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = listWhere(domain.ItemFilter{ItemType: domain.ItemTypePurchase, Code: "AB_1%"})
	assert.Equal(t, " WHERE item_type = $1 AND code LIKE $2", where)
	assert.Equal(t, []interface{}{domain.ItemTypePurchase, `AB\_1\%%`}, args)

	where, args = listWhere(domain.ItemFilter{Code: "R", AvailableOnly: true})
	assert.Equal(t, " WHERE code LIKE $1 AND is_sold = FALSE", where)
	assert.Equal(t, []interface{}{"R%"}, args)
}

// TestItemRepo_Integration runs against a migrated database named by JEWELSCAN_TEST_DB_HOST.
func TestItemRepo_Integration(t *testing.T) {
	host := os.Getenv("JEWELSCAN_TEST_DB_HOST")
	if host == "" {
		t.Skip("JEWELSCAN_TEST_DB_HOST not set")
	}
	db, err := NewDB(&config.DBConfig{
		Host: host, Port: 5432, User: "jewelscan", Password: "jewelscan_secret",
		Name: "jewelscan_test", SSLMode: "disable", MaxOpen: 2, MaxIdle: 1,
	})
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec("TRUNCATE jewellery_items")
	require.NoError(t, err)

	repo := NewItemRepo(db)
	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	items := []domain.JewelleryItem{
		{Code: "ABC123", GrossWeight: 12500, StoneWeight: 2500, NetWeight: 10000, Pieces: 1, ItemType: domain.ItemTypePurchase, CreatedBy: "ops"},
		{Code: "XYZ9", GrossWeight: 7250, StoneWeight: 0, NetWeight: 7250, Pieces: 5, ItemType: domain.ItemTypeSale, IsSold: true},
	}
	require.NoError(t, repo.CreateBatch(ctx, items))
	assert.NotEqual(t, items[0].ID, items[1].ID)

	got, err := repo.GetByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, domain.Weight(12500), got.GrossWeight)
	assert.Equal(t, "ops", got.CreatedBy)

	_, err = repo.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.CreateBatch(ctx, []domain.JewelleryItem{
		{Code: "NEW1", GrossWeight: 1000, NetWeight: 1000, ItemType: domain.ItemTypeSale},
		{Code: "XYZ9", GrossWeight: 1000, NetWeight: 1000, ItemType: domain.ItemTypeSale},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateItemCode)
	_, err = repo.GetByCode(ctx, "NEW1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "batch must be atomic")

	list, total, err := repo.List(ctx, domain.ItemFilter{ItemType: domain.ItemTypeSale}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "XYZ9", list[0].Code)

	_, total, err = repo.List(ctx, domain.ItemFilter{AvailableOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
