package models

// Account types.
const (
	TipoAdmin   = "admin"
	TipoCliente = "cliente"
)

// User is a platform account persisted in usuarios.json. The password is
// stored as plain text for compatibility with the existing client and data
// files; it must never leave the process in an API response.
type User struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo"`
}

// UserPublic is User without the password for API responses.
type UserPublic struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
}

// ToPublic converts User to UserPublic.
func (u User) ToPublic() UserPublic {
	return UserPublic{Nome: u.Nome, Email: u.Email, Tipo: u.Tipo}
}
