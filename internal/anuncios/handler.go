package anuncios

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painelout/backend/pkg/response"
	"github.com/painelout/backend/pkg/storage"
)

// UpdateRequest is the body for PATCH /api/anuncios/:id. Only fields present
// in the JSON are applied; arquivo cannot be changed here.
type UpdateRequest struct {
	Titulo  *string `json:"titulo"`
	Tipo    *string `json:"tipo"`
	Duracao *string `json:"duracao"`
}

// Handler handles anúncio HTTP endpoints.
type Handler struct {
	repo   *Repository
	media  storage.Media
	logger *zap.Logger
}

// NewHandler creates an anuncios handler.
func NewHandler(repo *Repository, media storage.Media, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, media: media, logger: logger}
}

// Create handles POST /api/anuncios (multipart form; optional "arquivo" file
// field). Text fields carry no required-field validation.
func (h *Handler) Create(c *gin.Context) {
	titulo := c.PostForm("titulo")
	tipo := c.PostForm("tipo")
	duracao := c.PostForm("duracao")

	var arquivo *string
	if file, err := c.FormFile("arquivo"); err == nil {
		if file.Size > storage.MaxMediaSize {
			response.BadRequest(c, "Arquivo excede o tamanho máximo de 50MB")
			return
		}
		src, err := file.Open()
		if err != nil {
			h.logger.Error("open uploaded file", zap.Error(err))
			response.Internal(c, "Erro ao ler arquivo enviado")
			return
		}
		defer src.Close()

		stored, err := h.media.Save(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src, file.Size)
		if err != nil {
			h.logger.Error("store media file", zap.Error(err), zap.String("filename", file.Filename))
			response.Internal(c, "Erro ao salvar arquivo")
			return
		}
		arquivo = &stored
	}

	a, err := h.repo.Create(titulo, tipo, duracao, arquivo)
	if err != nil {
		h.logger.Error("create anuncio", zap.Error(err))
		response.Internal(c, "Erro ao criar anúncio")
		return
	}
	response.Created(c, gin.H{"message": "Anúncio criado com sucesso!", "anuncio": a})
}

// List handles GET /api/anuncios/meus.
func (h *Handler) List(c *gin.Context) {
	anuncios, err := h.repo.List()
	if err != nil {
		h.logger.Error("list anuncios", zap.Error(err))
		response.Internal(c, "Erro ao listar anúncios")
		return
	}
	response.OK(c, anuncios)
}

// Update handles PATCH /api/anuncios/:id.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}
	a, err := h.repo.Update(c.Param("id"), UpdateParams{
		Titulo:  req.Titulo,
		Tipo:    req.Tipo,
		Duracao: req.Duracao,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.logger.Error("update anuncio", zap.Error(err))
		response.Internal(c, "Erro ao atualizar anúncio")
		return
	}
	response.OK(c, gin.H{"message": "Anúncio atualizado com sucesso!", "anuncio": a})
}

// Delete handles DELETE /api/anuncios/:id. The media file is removed best
// effort: a storage failure is logged and the record deletion still succeeds.
func (h *Handler) Delete(c *gin.Context) {
	removed, err := h.repo.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.logger.Error("delete anuncio", zap.Error(err))
		response.Internal(c, "Erro ao excluir anúncio")
		return
	}
	if removed.Arquivo != nil {
		if err := h.media.Delete(c.Request.Context(), *removed.Arquivo); err != nil {
			h.logger.Warn("delete media file", zap.Error(err), zap.String("arquivo", *removed.Arquivo))
		}
	}
	response.OK(c, gin.H{"message": "Anúncio excluído com sucesso!"})
}
