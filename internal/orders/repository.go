package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/minimartx/storefront/internal/domain"
)

// Repository persists placed orders. Order rows are written once by checkout
// and only their status column ever changes afterwards; line items are
// immutable product snapshots. Card and UPI fields never reach the database,
// only the payment method name does.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, order *domain.OrderRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, session_id, status, total, payment_method,
			ship_name, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
			placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, order.ID, order.SessionID, order.Status, order.Total, order.Payment.Method,
		order.Address.Name, order.Address.Phone, order.Address.Address,
		order.Address.City, order.Address.State, order.Address.Pincode,
		order.PlacedAt)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, title, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, item.Product.ID, item.Product.Title,
			item.Product.Price, item.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.OrderRecord, error) {
	order := &domain.OrderRecord{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, session_id, status, total, payment_method,
			ship_name, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
			placed_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.SessionID, &order.Status, &order.Total,
		&order.Payment.Method,
		&order.Address.Name, &order.Address.Phone, &order.Address.Address,
		&order.Address.City, &order.Address.State, &order.Address.Pincode,
		&order.PlacedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, title, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.Product.ID, &item.Product.Title, &item.Product.Price, &item.Quantity); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

// ListBySession returns the session's order history, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]domain.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, status, total, payment_method,
			ship_name, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
			placed_at
		FROM orders
		WHERE session_id = $1
		ORDER BY placed_at DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.OrderRecord)
	var orderIDs []string

	for rows.Next() {
		var order domain.OrderRecord
		if err := rows.Scan(&order.ID, &order.SessionID, &order.Status, &order.Total,
			&order.Payment.Method,
			&order.Address.Name, &order.Address.Phone, &order.Address.Address,
			&order.Address.City, &order.Address.State, &order.Address.Pincode,
			&order.PlacedAt); err != nil {
			return nil, err
		}
		order.Items = []domain.LineItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.OrderRecord{}, nil
	}

	for _, id := range orderIDs {
		itemRows, err := r.db.QueryContext(ctx, `
			SELECT product_id, title, price, quantity
			FROM order_items
			WHERE order_id = $1
			ORDER BY id
		`, id)
		if err != nil {
			return nil, err
		}

		for itemRows.Next() {
			var item domain.LineItem
			if err := itemRows.Scan(&item.Product.ID, &item.Product.Title, &item.Product.Price, &item.Quantity); err != nil {
				_ = itemRows.Close()
				return nil, err
			}
			orderMap[id].Items = append(orderMap[id].Items, item)
		}

		if err := itemRows.Err(); err != nil {
			_ = itemRows.Close()
			return nil, err
		}
		_ = itemRows.Close()
	}

	orders := make([]domain.OrderRecord, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

// UpdateStatus advances the order one step along the tracking pipeline.
// Skipping steps or moving backwards is rejected.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.OrderRecord, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if !order.Status.CanAdvanceTo(status) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", domain.ErrValidation, order.Status, status)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// Delete removes an order and its items. Checkout uses this to compensate
// when the cart cannot be cleared after the insert.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
