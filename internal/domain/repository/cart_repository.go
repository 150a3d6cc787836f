package repository

import "github.com/Faraz011/virasat2/internal/domain/entity"

// CartRepository defines the persistence port for the cart ledger (DIP).
//
// Delete is scoped by id AND account and reports nothing about whether a
// row matched: removal of an absent or foreign line is a silent no-op,
// matching the storefront's idempotent remove semantics.
type CartRepository interface {
	ListByAccount(accountID string) ([]*entity.CartLineDetail, error)
	GetByAccountAndProduct(accountID, productID string) (*entity.CartLine, error)
	GetByIDAndAccount(id, accountID string) (*entity.CartLine, error)
	Create(line *entity.CartLine) error
	UpdateQuantity(id string, quantity int) error
	Delete(id, accountID string) error
	DeleteByAccount(accountID string) error
}
