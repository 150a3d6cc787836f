package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implements the CartRepository port over PostgreSQL (usable with pool or tx).
// The cart_items table carries UNIQUE (account_id, product_id): at most
// one line per pair, enforced by the store itself.
type CartRepo struct {
	q Querier
}

// NewCartRepository builds the cart persistence adapter. Pass a pool or a tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// ListByAccount returns the account's lines joined with product display
// data, in insertion order.
func (r *CartRepo) ListByAccount(accountID string) ([]*entity.CartLineDetail, error) {
	query := `
		SELECT ci.id, ci.account_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.name, p.price, p.original_price, p.image_url, p.slug
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.account_id = $1
		ORDER BY ci.created_at, ci.id`
	rows, err := r.q.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLineDetail
	for rows.Next() {
		var l entity.CartLineDetail
		if err := rows.Scan(
			&l.ID, &l.AccountID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
			&l.Name, &l.Price, &l.OriginalPrice, &l.ImageURL, &l.Slug,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetByAccountAndProduct fetches the account's line for a product, or nil.
func (r *CartRepo) GetByAccountAndProduct(accountID, productID string) (*entity.CartLine, error) {
	query := `
		SELECT id, account_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE account_id = $1 AND product_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, accountID, productID))
}

// GetByIDAndAccount fetches a line by id scoped to its owner, or nil.
// Another account's line is indistinguishable from a missing one.
func (r *CartRepo) GetByIDAndAccount(id, accountID string) (*entity.CartLine, error) {
	query := `
		SELECT id, account_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE id = $1 AND account_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, accountID))
}

// Create persists a new line.
func (r *CartRepo) Create(line *entity.CartLine) error {
	query := `
		INSERT INTO cart_items (id, account_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.AccountID, line.ProductID, line.Quantity, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity in place.
func (r *CartRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cart_items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

// Delete removes a line scoped by id and owner. Matching zero rows is not
// an error: removal is idempotent and never leaks other accounts' lines.
func (r *CartRepo) Delete(id, accountID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_items WHERE id = $1 AND account_id = $2`,
		id, accountID,
	)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// DeleteByAccount removes all of the account's lines.
func (r *CartRepo) DeleteByAccount(accountID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_items WHERE account_id = $1`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *CartRepo) scanOne(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(&l.ID, &l.AccountID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return &l, nil
}
