package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/shop"
)

// InventoryRepository implements inventory persistence using PostgreSQL
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new PostgreSQL inventory repository
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

const inventoryColumns = `id, user_id, item_type, item_id, quantity, acquired_at`

// List returns all inventory rows for a user
func (r *InventoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*shop.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM user_inventory
		WHERE user_id = $1
		ORDER BY acquired_at DESC
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []*shop.InventoryItem
	for rows.Next() {
		item := &shop.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemType, &item.ItemID, &item.Quantity, &item.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns the user's stack for one item, or nil when absent
func (r *InventoryRepository) Get(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) (*shop.InventoryItem, error) {
	return r.get(ctx, userID, itemType, itemID, false)
}

// GetForUpdate is Get with a row-level lock for the surrounding
// transaction
func (r *InventoryRepository) GetForUpdate(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) (*shop.InventoryItem, error) {
	return r.get(ctx, userID, itemType, itemID, true)
}

func (r *InventoryRepository) get(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID, forUpdate bool) (*shop.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM user_inventory
		WHERE user_id = $1 AND item_type = $2 AND item_id = $3
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	item := &shop.InventoryItem{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, userID, itemType, itemID).Scan(
		&item.ID, &item.UserID, &item.ItemType, &item.ItemID, &item.Quantity, &item.AcquiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan inventory row: %w", err)
	}
	return item, nil
}

// AddQuantity upserts the stack, incrementing quantity by qty
func (r *InventoryRepository) AddQuantity(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID, qty int) error {
	query := `
		INSERT INTO user_inventory (id, user_id, item_type, item_id, quantity, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, item_type, item_id)
		DO UPDATE SET quantity = user_inventory.quantity + EXCLUDED.quantity
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query, uuid.New(), userID, itemType, itemID, qty, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add inventory quantity: %w", err)
	}
	return nil
}

// InsertIfAbsent inserts a quantity-1 row unless the user already owns
// the item. Used for binary-owned characters.
func (r *InventoryRepository) InsertIfAbsent(ctx context.Context, userID uuid.UUID, itemType shop.ItemType, itemID uuid.UUID) error {
	query := `
		INSERT INTO user_inventory (id, user_id, item_type, item_id, quantity, acquired_at)
		VALUES ($1, $2, $3, $4, 1, $5)
		ON CONFLICT (user_id, item_type, item_id) DO NOTHING
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query, uuid.New(), userID, itemType, itemID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert inventory row: %w", err)
	}
	return nil
}

// SetQuantity overwrites the stack quantity
func (r *InventoryRepository) SetQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, `UPDATE user_inventory SET quantity = $2 WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("failed to set inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shop.ErrItemNotOwned
	}
	return nil
}

// Delete removes a stack row
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := queryerFrom(ctx, r.pool).Exec(ctx, `DELETE FROM user_inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete inventory row: %w", err)
	}
	return nil
}
