package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"jewelscan/internal/domain"
	"jewelscan/internal/port"
)

const (
	itemColumns    = "id, code, gross_weight, stone_weight, net_weight, pieces, item_type, is_sold, created_by, created_at"
	itemColumnsLen = 10

	// Postgres caps a statement at 65535 bind parameters.
	maxInsertRows = 1000

	uniqueViolation = "23505"
)

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) CreateBatch(ctx context.Context, items []domain.JewelleryItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].CreatedAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("itemRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range insertStatements(items, maxInsertRows) {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("itemRepo.CreateBatch: %w: %s", domain.ErrDuplicateItemCode, pgErr.Detail)
			}
			return fmt.Errorf("itemRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("itemRepo.CreateBatch commit: %w", err)
	}
	return nil
}

type insertStmt struct {
	query string
	args  []interface{}
}

// insertStatements splits items into multi-row INSERTs of at most rowsPerStmt rows each.
func insertStatements(items []domain.JewelleryItem, rowsPerStmt int) []insertStmt {
	stmts := make([]insertStmt, 0, (len(items)+rowsPerStmt-1)/rowsPerStmt)
	for start := 0; start < len(items); start += rowsPerStmt {
		chunk := items[start:min(start+rowsPerStmt, len(items))]

		valueStrings := make([]string, 0, len(chunk))
		valueArgs := make([]interface{}, 0, len(chunk)*itemColumnsLen)
		for i := range chunk {
			item := &chunk[i]
			valueStrings = append(valueStrings, placeholders(i*itemColumnsLen, itemColumnsLen))
			valueArgs = append(valueArgs,
				item.ID, item.Code, item.GrossWeight, item.StoneWeight, item.NetWeight,
				item.Pieces, item.ItemType, item.IsSold, item.CreatedBy, item.CreatedAt)
		}

		stmts = append(stmts, insertStmt{
			query: fmt.Sprintf(`INSERT INTO jewellery_items (%s) VALUES %s`,
				itemColumns, strings.Join(valueStrings, ", ")),
			args: valueArgs,
		})
	}
	return stmts
}

func (r *itemRepo) GetByCode(ctx context.Context, code string) (*domain.JewelleryItem, error) {
	var item domain.JewelleryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT "+itemColumns+" FROM jewellery_items WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("itemRepo.GetByCode: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error) {
	where, args := listWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jewellery_items"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM jewellery_items%s ORDER BY created_at DESC, code LIMIT $%d OFFSET $%d",
		itemColumns, where, n+1, n+2)
	items := []domain.JewelleryItem{}
	if err := r.db.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List: %w", err)
	}
	return items, total, nil
}

// listWhere builds the WHERE clause for a listing filter. Code matches as a prefix.
func listWhere(filter domain.ItemFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.ItemType != "" {
		args = append(args, filter.ItemType)
		conds = append(conds, fmt.Sprintf("item_type = $%d", len(args)))
	}
	if filter.Code != "" {
		args = append(args, escapeLike(filter.Code)+"%")
		conds = append(conds, fmt.Sprintf("code LIKE $%d", len(args)))
	}
	if filter.AvailableOnly {
		conds = append(conds, "is_sold = FALSE")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(base, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", base+i+1)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
