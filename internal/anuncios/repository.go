package anuncios

import (
	"errors"

	"github.com/google/uuid"

	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/pkg/jsonstore"
)

// ErrNotFound means no anúncio has the requested id.
var ErrNotFound = errors.New("Anúncio não encontrado")

// UpdateParams is a partial patch of an anúncio's editable fields. The stored
// media file is not editable after creation.
type UpdateParams struct {
	Titulo  *string
	Tipo    *string
	Duracao *string
}

// Repository handles anúncio persistence over the anuncios collection.
type Repository struct {
	anuncios *jsonstore.Collection[models.Anuncio]
}

// NewRepository creates an anuncios repository.
func NewRepository(anuncios *jsonstore.Collection[models.Anuncio]) *Repository {
	return &Repository{anuncios: anuncios}
}

// Create appends a new anúncio under a fresh opaque id. Empty fields are
// stored as-is; arquivo is nil when no media was uploaded.
func (r *Repository) Create(titulo, tipo, duracao string, arquivo *string) (models.Anuncio, error) {
	a := models.Anuncio{
		ID:      uuid.NewString(),
		Titulo:  titulo,
		Tipo:    tipo,
		Duracao: duracao,
		Arquivo: arquivo,
	}
	err := r.anuncios.Update(func(items []models.Anuncio) ([]models.Anuncio, error) {
		return append(items, a), nil
	})
	if err != nil {
		return models.Anuncio{}, err
	}
	return a, nil
}

// List returns all anúncios in storage order.
func (r *Repository) List() ([]models.Anuncio, error) {
	return r.anuncios.Load()
}

// Update applies the fields present in params.
func (r *Repository) Update(id string, params UpdateParams) (models.Anuncio, error) {
	var updated models.Anuncio
	err := r.anuncios.Update(func(items []models.Anuncio) ([]models.Anuncio, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if params.Titulo != nil {
				items[i].Titulo = *params.Titulo
			}
			if params.Tipo != nil {
				items[i].Tipo = *params.Tipo
			}
			if params.Duracao != nil {
				items[i].Duracao = *params.Duracao
			}
			updated = items[i]
			return items, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Anuncio{}, err
	}
	return updated, nil
}

// Delete removes the anúncio and returns the removed record, so the caller
// can clean up its media file.
func (r *Repository) Delete(id string) (models.Anuncio, error) {
	var removed models.Anuncio
	err := r.anuncios.Update(func(items []models.Anuncio) ([]models.Anuncio, error) {
		for i := range items {
			if items[i].ID == id {
				removed = items[i]
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Anuncio{}, err
	}
	return removed, nil
}
