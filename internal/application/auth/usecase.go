package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
	"github.com/Faraz011/virasat2/pkg/jwt"
)

// Routing key for account events.
const RKAccountRegistered = "account.registered"

// JWTConfig settings for token generation.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// EventPublisher is the broker port (same contract as the cart's).
type EventPublisher interface {
	PublishJSON(routingKey string, v any) error
}

// UseCase authentication use cases: registration, login, account resolution.
type UseCase struct {
	accountRepo repository.AccountRepository
	jwtCfg      JWTConfig
	publisher   EventPublisher
}

// NewUseCase builds the auth use case. publisher may be nil.
func NewUseCase(accountRepo repository.AccountRepository, jwtCfg JWTConfig, publisher EventPublisher) *UseCase {
	return &UseCase{accountRepo: accountRepo, jwtCfg: jwtCfg, publisher: publisher}
}

// Register creates an account: hashes the password with bcrypt and
// persists. Returns ErrEmailAlreadyExists on a duplicate email.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AccountResponse, error) {
	existing, err := uc.accountRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	if uc.publisher != nil {
		_ = uc.publisher.PublishJSON(RKAccountRegistered, map[string]string{
			"account_id": account.ID,
			"email":      account.Email,
		})
	}
	return toAccountResponse(account), nil
}

// Login verifies email/password and returns a signed session token.
// Unknown email and wrong password both map to ErrUnauthorized so the
// response does not reveal which one failed.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accountRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.IsAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Account: *toAccountResponse(account),
	}, nil
}

// CurrentAccount resolves an account id (from a parsed token) to the
// account. A missing account is (nil, nil), not an error: an invalid
// session is just "no account".
func (uc *UseCase) CurrentAccount(accountID string) (*dto.AccountResponse, error) {
	if accountID == "" {
		return nil, nil
	}
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
