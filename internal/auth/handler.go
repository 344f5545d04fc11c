package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painelout/backend/pkg/response"
)

// RegisterRequest is the body for POST /api/auth/register. Older clients send
// the password as "senha", newer ones as "password"; both are accepted.
type RegisterRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Senha    string `json:"senha"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Senha    string `json:"senha"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func password(password, senha string) string {
	if password != "" {
		return password
	}
	return senha
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	user, err := h.repo.Create(req.Nome, req.Email, password(req.Password, req.Senha))
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Error("register user", zap.Error(err))
		response.Internal(c, "Erro ao cadastrar usuário")
		return
	}
	response.Created(c, gin.H{
		"message": "Usuário cadastrado com sucesso!",
		"user":    user.ToPublic(),
	})
}

// Login handles POST /api/auth/login. There is no session or token: success
// returns the public user payload and nothing else.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	user, err := h.repo.Authenticate(req.Email, password(req.Password, req.Senha))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		h.logger.Error("login", zap.Error(err))
		response.Internal(c, "Erro ao efetuar login")
		return
	}
	response.OK(c, gin.H{"user": user.ToPublic()})
}

// ListClientes handles GET /api/auth/clientes.
func (h *Handler) ListClientes(c *gin.Context) {
	clientes, err := h.repo.ListClientes()
	if err != nil {
		h.logger.Error("list clientes", zap.Error(err))
		response.Internal(c, "Erro ao listar clientes")
		return
	}
	response.OK(c, clientes)
}
