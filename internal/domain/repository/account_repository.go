package repository

import "github.com/Faraz011/virasat2/internal/domain/entity"

// AccountRepository defines the persistence port for Account (DIP).
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
}
