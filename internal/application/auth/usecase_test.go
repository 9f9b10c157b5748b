package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo implementa repository.UserRepository en memoria.
type fakeUserRepo struct {
	users  map[string]*entity.User // por email
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newAuthFixture() (*fakeUserRepo, *auth.AuthUseCase) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "tienda-api-test",
	})
	return repo, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHashBcrypt(t *testing.T) {
	repo, uc := newAuthFixture()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.test",
		Password: "super-secreta",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.test", out.Email)
	assert.False(t, out.IsAdmin, "los registros nuevos nunca son admin")

	stored := repo.users["ana@tienda.test"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "super-secreta", stored.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secreta")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "otra-clave-123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorto(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	_, uc := newAuthFixture()

	reg, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, email, isAdmin, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "ana@tienda.test", email)
	assert.False(t, isAdmin)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.test", Password: "equivocada-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.test", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	require.NoError(t, err)
	repo.users["ana@tienda.test"].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.test", Password: "super-secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
