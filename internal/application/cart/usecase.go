package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
)

// Routing keys for cart events.
const (
	RKCartUpdated = "cart.updated"
	RKCartCleared = "cart.cleared"
)

// UseCase owns the cart ledger: the authoritative (account, product) ->
// reserved quantity mapping. Every mutation is a single transaction that
// locks the product row (SELECT FOR UPDATE), checks stock and writes the
// line under that lock. Concurrent mutations on the same product therefore
// serialize at the row: a check can never pass against state another
// writer is about to invalidate.
//
// Lock order is product-first in every operation that takes the lock, so
// AddItem and UpdateItem on the same product cannot deadlock each other.
type UseCase struct {
	txRunner  TxRunner
	cartRepo  repository.CartRepository
	publisher EventPublisher
}

// NewUseCase builds the cart use case. Pass NopPublisher{} when events are disabled.
func NewUseCase(txRunner TxRunner, cartRepo repository.CartRepository, publisher EventPublisher) *UseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &UseCase{txRunner: txRunner, cartRepo: cartRepo, publisher: publisher}
}

// GetCart returns the account's lines enriched with product display data,
// in insertion order. An account with no lines gets an empty view, not an
// error; callers resolve "no account" to the same empty view themselves.
func (uc *UseCase) GetCart(ctx context.Context, accountID string) (*dto.CartResponse, error) {
	lines, err := uc.cartRepo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(lines), nil
}

// AddItem reserves quantity units of a product: increments the existing
// line or creates one. The resulting quantity must not exceed the
// product's current stock; on failure nothing is written (no partial
// increment). Returns the refreshed cart view.
func (uc *UseCase) AddItem(ctx context.Context, accountID, productID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	err := uc.txRunner.Run(ctx, func(cartRepo repository.CartRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		line, err := cartRepo.GetByAccountAndProduct(accountID, productID)
		if err != nil {
			return err
		}
		newQty := quantity
		if line != nil {
			newQty += line.Quantity
		}
		if newQty > product.StockQuantity {
			return domain.ErrInsufficientStock
		}
		if line != nil {
			return cartRepo.UpdateQuantity(line.ID, newQty)
		}
		now := time.Now()
		return cartRepo.Create(&entity.CartLine{
			ID:        uuid.New().String(),
			AccountID: accountID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, accountID)
}

// UpdateItem sets a line's quantity. The line must exist and belong to the
// account (id alone is never enough). Zero or negative quantity removes
// the line. The new quantity must not exceed current stock.
func (uc *UseCase) UpdateItem(ctx context.Context, accountID, lineID string, quantity int) (*dto.CartResponse, error) {
	err := uc.txRunner.Run(ctx, func(cartRepo repository.CartRepository, productRepo repository.ProductRepository) error {
		// Unlocked read just to learn the product; the authoritative
		// re-read happens after the product lock is held.
		line, err := cartRepo.GetByIDAndAccount(lineID, accountID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		line, err = cartRepo.GetByIDAndAccount(lineID, accountID)
		if err != nil {
			return err
		}
		if line == nil {
			// Deleted between the first read and the lock.
			return domain.ErrNotFound
		}
		if quantity <= 0 {
			return cartRepo.Delete(line.ID, accountID)
		}
		if quantity > product.StockQuantity {
			return domain.ErrInsufficientStock
		}
		return cartRepo.UpdateQuantity(line.ID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, accountID)
}

// RemoveItem deletes a line scoped by id and account. Removing an absent
// line — or another account's line — is a silent no-op: the DELETE simply
// matches zero rows. Idempotent.
func (uc *UseCase) RemoveItem(ctx context.Context, accountID, lineID string) (*dto.CartResponse, error) {
	if err := uc.cartRepo.Delete(lineID, accountID); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, accountID)
}

// ClearCart deletes every line for the account. Always succeeds, even on
// an already-empty cart.
func (uc *UseCase) ClearCart(ctx context.Context, accountID string) (*dto.CartResponse, error) {
	if err := uc.cartRepo.DeleteByAccount(accountID); err != nil {
		return nil, err
	}
	_ = uc.publisher.PublishJSON(RKCartCleared, cartEvent{AccountID: accountID})
	return &dto.CartResponse{Items: []dto.CartItemResponse{}, Subtotal: decimal.Zero}, nil
}

// refresh re-reads the cart and publishes cart.updated with the new view.
func (uc *UseCase) refresh(ctx context.Context, accountID string) (*dto.CartResponse, error) {
	view, err := uc.GetCart(ctx, accountID)
	if err != nil {
		return nil, err
	}
	_ = uc.publisher.PublishJSON(RKCartUpdated, cartEvent{AccountID: accountID, Items: len(view.Items)})
	return view, nil
}

type cartEvent struct {
	AccountID string `json:"account_id"`
	Items     int    `json:"items,omitempty"`
}

func toCartResponse(lines []*entity.CartLineDetail) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		items = append(items, dto.CartItemResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			Name:          l.Name,
			Price:         l.Price,
			OriginalPrice: l.OriginalPrice,
			ImageURL:      l.ImageURL,
			Slug:          l.Slug,
			CreatedAt:     l.CreatedAt,
			UpdatedAt:     l.UpdatedAt,
		})
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return &dto.CartResponse{Items: items, Subtotal: subtotal}
}
