package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Faraz011/virasat2/internal/application/auth"
	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/pkg/jwt"
)

type memAccountRepo struct {
	byID    map[string]*entity.Account
	byEmail map[string]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		byID:    make(map[string]*entity.Account),
		byEmail: make(map[string]*entity.Account),
	}
}

func (r *memAccountRepo) Create(a *entity.Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *a
	r.byID[a.ID] = &cp
	r.byEmail[a.Email] = &cp
	return nil
}

func (r *memAccountRepo) GetByID(id string) (*entity.Account, error) {
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	if a, ok := r.byEmail[email]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpHours: 1, Issuer: "virasat-test"}

func TestRegister_HashesPasswordAndReturnsAccount(t *testing.T) {
	repo := newMemAccountRepo()
	uc := auth.NewUseCase(repo, testJWT, nil)

	out, err := uc.Register(dto.RegisterRequest{
		Email:     "priya@example.com",
		Password:  "super-secret-1",
		FirstName: "Priya",
		LastName:  "Sharma",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "priya@example.com", out.Email)
	assert.False(t, out.IsAdmin)

	stored := repo.byEmail["priya@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "super-secret-1", stored.PasswordHash, "plaintext must never be stored")
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"), "hash should be bcrypt")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secret-1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemAccountRepo()
	uc := auth.NewUseCase(repo, testJWT, nil)

	in := dto.RegisterRequest{Email: "priya@example.com", Password: "super-secret-1", FirstName: "Priya"}
	_, err := uc.Register(in)
	require.NoError(t, err)

	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_ReturnsParseableToken(t *testing.T) {
	repo := newMemAccountRepo()
	uc := auth.NewUseCase(repo, testJWT, nil)

	reg, err := uc.Register(dto.RegisterRequest{Email: "priya@example.com", Password: "super-secret-1", FirstName: "Priya"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "priya@example.com", Password: "super-secret-1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.Account.ID)

	accountID, isAdmin, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, accountID)
	assert.False(t, isAdmin)
}

// Unknown email and wrong password both come back as ErrUnauthorized so a
// caller cannot probe which emails are registered.
func TestLogin_BadCredentials(t *testing.T) {
	repo := newMemAccountRepo()
	uc := auth.NewUseCase(repo, testJWT, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "priya@example.com", Password: "super-secret-1", FirstName: "Priya"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "priya@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "super-secret-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCurrentAccount(t *testing.T) {
	repo := newMemAccountRepo()
	uc := auth.NewUseCase(repo, testJWT, nil)

	reg, err := uc.Register(dto.RegisterRequest{Email: "priya@example.com", Password: "super-secret-1", FirstName: "Priya"})
	require.NoError(t, err)

	out, err := uc.CurrentAccount(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "priya@example.com", out.Email)

	out, err = uc.CurrentAccount("")
	require.NoError(t, err)
	assert.Nil(t, out, "empty id means no session, not an error")
}
