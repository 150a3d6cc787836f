package repository

import "github.com/Faraz011/virasat2/internal/domain/entity"

// CategoryRepository defines the persistence port for Category (DIP).
type CategoryRepository interface {
	List() ([]*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
}
