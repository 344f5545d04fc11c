package auth

import (
	"errors"

	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/pkg/jsonstore"
)

var (
	// ErrDuplicateEmail rejects registration with an email already present.
	ErrDuplicateEmail = errors.New("Email já cadastrado")
	// ErrInvalidCredentials rejects a login with unknown email or wrong password.
	ErrInvalidCredentials = errors.New("Credenciais inválidas")
)

// Repository handles user persistence over the usuarios collection.
type Repository struct {
	users *jsonstore.Collection[models.User]
}

// NewRepository creates an auth repository.
func NewRepository(users *jsonstore.Collection[models.User]) *Repository {
	return &Repository{users: users}
}

// Create appends a new user with tipo "cliente". Email uniqueness is a
// case-sensitive exact match against the stored records.
func (r *Repository) Create(nome, email, senha string) (models.User, error) {
	user := models.User{Nome: nome, Email: email, Senha: senha, Tipo: models.TipoCliente}
	err := r.users.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate matches email and password by exact string comparison.
func (r *Repository) Authenticate(email, senha string) (models.User, error) {
	users, err := r.users.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			if u.Senha != senha {
				return models.User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// ListClientes returns all accounts with tipo "cliente", passwords stripped.
func (r *Repository) ListClientes() ([]models.UserPublic, error) {
	users, err := r.users.Load()
	if err != nil {
		return nil, err
	}
	clientes := []models.UserPublic{}
	for _, u := range users {
		if u.Tipo == models.TipoCliente {
			clientes = append(clientes, u.ToPublic())
		}
	}
	return clientes, nil
}
