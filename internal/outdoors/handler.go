package outdoors

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painelout/backend/pkg/response"
)

// CreateRequest is the body for POST /api/outdoors. All fields are required.
type CreateRequest struct {
	Nome        string `json:"nome"`
	Localizacao string `json:"localizacao"`
	Tipo        string `json:"tipo"`
	Usuario     string `json:"usuario"`
}

// UpdateRequest is the body for PUT /api/outdoors/:id. Only fields present in
// the JSON are applied.
type UpdateRequest struct {
	Nome        *string `json:"nome"`
	Localizacao *string `json:"localizacao"`
	Tipo        *string `json:"tipo"`
	Usuario     *string `json:"usuario"`
}

// OverrideRequest is the body for PATCH .../anuncios/:adId/vinculado.
type OverrideRequest struct {
	Titulo  *string `json:"titulo"`
	Duracao *string `json:"duracao"`
}

// ReorderRequest is the body for PUT .../anuncios/ordem.
type ReorderRequest struct {
	Ordem []string `json:"ordem"`
}

// Handler handles outdoor HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an outdoors handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func outdoorID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return 0, false
	}
	return id, true
}

// fail maps repository errors onto the API status codes.
func (h *Handler) fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrLinkTargetNotFound),
		errors.Is(err, ErrNotLinked),
		errors.Is(err, ErrAnuncioNotFound),
		errors.Is(err, ErrLinkNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidTipo):
		response.BadRequest(c, err.Error())
	default:
		h.logger.Error(op, zap.Error(err))
		response.Internal(c, "Erro interno ao acessar outdoors")
	}
}

// Create handles POST /api/outdoors.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}
	if req.Nome == "" || req.Localizacao == "" || req.Tipo == "" || req.Usuario == "" {
		response.BadRequest(c, "Todos os campos são obrigatórios")
		return
	}

	outdoor, err := h.repo.Create(req.Nome, req.Localizacao, req.Tipo, req.Usuario)
	if err != nil {
		h.fail(c, err, "create outdoor")
		return
	}
	response.Created(c, gin.H{"message": "Outdoor criado com sucesso!", "outdoor": outdoor})
}

// List handles GET /api/outdoors.
func (h *Handler) List(c *gin.Context) {
	outdoors, err := h.repo.List()
	if err != nil {
		h.fail(c, err, "list outdoors")
		return
	}
	response.OK(c, outdoors)
}

// ListMeus handles GET /api/outdoors/meus?usuario=.
func (h *Handler) ListMeus(c *gin.Context) {
	usuario := c.Query("usuario")
	if usuario == "" {
		response.BadRequest(c, "Usuário não informado")
		return
	}
	meus, err := h.repo.ListByUsuario(usuario)
	if err != nil {
		h.fail(c, err, "list outdoors by usuario")
		return
	}
	response.OK(c, meus)
}

// Get handles GET /api/outdoors/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	outdoor, err := h.repo.Get(id)
	if err != nil {
		h.fail(c, err, "get outdoor")
		return
	}
	response.OK(c, outdoor)
}

// Update handles PUT /api/outdoors/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}
	outdoor, err := h.repo.Update(id, UpdateParams{
		Nome:        req.Nome,
		Localizacao: req.Localizacao,
		Tipo:        req.Tipo,
		Usuario:     req.Usuario,
	})
	if err != nil {
		h.fail(c, err, "update outdoor")
		return
	}
	response.OK(c, gin.H{"message": "Outdoor atualizado com sucesso!", "outdoor": outdoor})
}

// Delete handles DELETE /api/outdoors/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		h.fail(c, err, "delete outdoor")
		return
	}
	response.OK(c, gin.H{"message": "Outdoor excluído com sucesso!"})
}

// Link handles POST /api/outdoors/:id/anuncios/:adId.
func (h *Handler) Link(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	if err := h.repo.Link(id, c.Param("adId")); err != nil {
		h.fail(c, err, "link anuncio")
		return
	}
	response.OK(c, gin.H{"message": "Anúncio vinculado com sucesso!"})
}

// ListAnuncios handles GET /api/outdoors/:id/anuncios.
func (h *Handler) ListAnuncios(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	anuncios, err := h.repo.LinkedAnuncios(id)
	if err != nil {
		h.fail(c, err, "list linked anuncios")
		return
	}
	response.OK(c, anuncios)
}

// PatchVinculado handles PATCH /api/outdoors/:id/anuncios/:adId/vinculado.
func (h *Handler) PatchVinculado(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}
	override, err := h.repo.PatchOverride(id, c.Param("adId"), OverridePatch{
		Titulo:  req.Titulo,
		Duracao: req.Duracao,
	})
	if err != nil {
		h.fail(c, err, "patch link override")
		return
	}
	response.OK(c, gin.H{"message": "Anúncio vinculado atualizado com sucesso!", "anuncio": override})
}

// Unlink handles DELETE /api/outdoors/:id/anuncios/:adId.
func (h *Handler) Unlink(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	if err := h.repo.Unlink(id, c.Param("adId")); err != nil {
		h.fail(c, err, "unlink anuncio")
		return
	}
	response.OK(c, gin.H{"message": "Anúncio desvinculado com sucesso!"})
}

// Reorder handles PUT /api/outdoors/:id/anuncios/ordem.
func (h *Handler) Reorder(c *gin.Context) {
	id, ok := outdoorID(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ordem == nil {
		response.BadRequest(c, "Ordem inválida")
		return
	}
	if err := h.repo.Reorder(id, req.Ordem); err != nil {
		h.fail(c, err, "reorder anuncios")
		return
	}
	response.OK(c, gin.H{"message": "Ordem atualizada com sucesso!"})
}
