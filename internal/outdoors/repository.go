package outdoors

import (
	"errors"
	"strings"

	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/pkg/jsonstore"
)

var (
	// ErrNotFound means no outdoor has the requested id.
	ErrNotFound = errors.New("Outdoor não encontrado")
	// ErrInvalidTipo rejects a display type outside LED/LCD/projetor.
	ErrInvalidTipo = errors.New("Tipo deve ser LED, LCD ou projetor")
	// ErrLinkTargetNotFound means the outdoor or the anúncio of a link is missing.
	ErrLinkTargetNotFound = errors.New("Outdoor ou anúncio não encontrado")
	// ErrNotLinked means the anúncio is not in the outdoor's link list.
	ErrNotLinked = errors.New("Anúncio não vinculado a este outdoor")
	// ErrAnuncioNotFound means no global anúncio record exists to seed an override.
	ErrAnuncioNotFound = errors.New("Anúncio não encontrado")
	// ErrLinkNotFound means there is no link to remove.
	ErrLinkNotFound = errors.New("Vínculo não encontrado")
)

// NormalizeTipo validates a display type case-insensitively and returns its
// canonical spelling: LED and LCD uppercased, projetor lowercased.
func NormalizeTipo(tipo string) (string, bool) {
	if upper := strings.ToUpper(tipo); upper == models.TipoLED || upper == models.TipoLCD {
		return upper, true
	}
	if strings.ToLower(tipo) == models.TipoProjetor {
		return models.TipoProjetor, true
	}
	return "", false
}

// UpdateParams is a partial patch of an outdoor's editable fields.
type UpdateParams struct {
	Nome        *string
	Localizacao *string
	Tipo        *string
	Usuario     *string
}

// OverridePatch is a partial patch of a link override.
type OverridePatch struct {
	Titulo  *string
	Duracao *string
}

// Repository handles outdoor persistence and the link list between outdoors
// and anúncios. It reads the anuncios collection to validate link targets and
// to resolve linked records, but never writes it.
type Repository struct {
	outdoors *jsonstore.Collection[models.Outdoor]
	anuncios *jsonstore.Collection[models.Anuncio]
}

// NewRepository creates an outdoors repository.
func NewRepository(outdoors *jsonstore.Collection[models.Outdoor], anuncios *jsonstore.Collection[models.Anuncio]) *Repository {
	return &Repository{outdoors: outdoors, anuncios: anuncios}
}

// Create appends a new outdoor with the next sequential id (1 + highest
// existing id; ids of deleted outdoors are not reused).
func (r *Repository) Create(nome, localizacao, tipo, usuario string) (models.Outdoor, error) {
	normalized, ok := NormalizeTipo(tipo)
	if !ok {
		return models.Outdoor{}, ErrInvalidTipo
	}
	var created models.Outdoor
	err := r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		next := 1
		for _, o := range items {
			if o.ID >= next {
				next = o.ID + 1
			}
		}
		created = models.Outdoor{
			ID:          next,
			Nome:        nome,
			Localizacao: localizacao,
			Tipo:        normalized,
			Usuario:     usuario,
		}
		return append(items, created), nil
	})
	if err != nil {
		return models.Outdoor{}, err
	}
	return created, nil
}

// List returns all outdoors in storage order.
func (r *Repository) List() ([]models.Outdoor, error) {
	return r.outdoors.Load()
}

// Get returns the outdoor with the given id.
func (r *Repository) Get(id int) (models.Outdoor, error) {
	items, err := r.outdoors.Load()
	if err != nil {
		return models.Outdoor{}, err
	}
	for _, o := range items {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Outdoor{}, ErrNotFound
}

// ListByUsuario returns the outdoors owned by usuario (exact match).
func (r *Repository) ListByUsuario(usuario string) ([]models.Outdoor, error) {
	items, err := r.outdoors.Load()
	if err != nil {
		return nil, err
	}
	meus := []models.Outdoor{}
	for _, o := range items {
		if o.Usuario == usuario {
			meus = append(meus, o)
		}
	}
	return meus, nil
}

// Update applies the fields present in params. The display type is stored as
// sent, without re-validation, matching the established update contract.
func (r *Repository) Update(id int, params UpdateParams) (models.Outdoor, error) {
	var updated models.Outdoor
	err := r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if params.Nome != nil {
				items[i].Nome = *params.Nome
			}
			if params.Localizacao != nil {
				items[i].Localizacao = *params.Localizacao
			}
			if params.Tipo != nil {
				items[i].Tipo = *params.Tipo
			}
			if params.Usuario != nil {
				items[i].Usuario = *params.Usuario
			}
			updated = items[i]
			return items, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Outdoor{}, err
	}
	return updated, nil
}

// Delete removes the outdoor with the given id.
func (r *Repository) Delete(id int) error {
	return r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		kept := items[:0]
		for _, o := range items {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(items) {
			return nil, ErrNotFound
		}
		return kept, nil
	})
}

// Link appends the anúncio id to the outdoor's link list. Linking an already
// linked anúncio is a no-op.
func (r *Repository) Link(outdoorID int, anuncioID string) error {
	exists, err := r.anuncioExists(anuncioID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrLinkTargetNotFound
	}
	return r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		for i := range items {
			if items[i].ID != outdoorID {
				continue
			}
			if !items[i].Linked(anuncioID) {
				items[i].Anuncios = append(items[i].Anuncios, anuncioID)
			}
			return items, nil
		}
		return nil, ErrLinkTargetNotFound
	})
}

// LinkedAnuncios resolves the outdoor's link list against the anúncio
// collection, in stored order, applying any local override to the returned
// copy. Ids whose anúncio no longer exists are skipped silently.
func (r *Repository) LinkedAnuncios(outdoorID int) ([]models.Anuncio, error) {
	outdoor, err := r.Get(outdoorID)
	if err != nil {
		return nil, err
	}
	anuncios, err := r.anuncios.Load()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Anuncio, len(anuncios))
	for _, a := range anuncios {
		byID[a.ID] = a
	}
	resolved := []models.Anuncio{}
	for _, id := range outdoor.Anuncios {
		a, ok := byID[id]
		if !ok {
			continue
		}
		if ov, ok := outdoor.AnunciosVinculados[id]; ok {
			a.Titulo = ov.Titulo
			a.Duracao = ov.Duracao
		}
		resolved = append(resolved, a)
	}
	return resolved, nil
}

// PatchOverride updates the outdoor's local override for a linked anúncio.
// The first write seeds the override from the current global record's title
// and duration, then the patch is applied on top; later writes patch the
// stored override only.
func (r *Repository) PatchOverride(outdoorID int, anuncioID string, patch OverridePatch) (models.LinkOverride, error) {
	anuncios, err := r.anuncios.Load()
	if err != nil {
		return models.LinkOverride{}, err
	}
	var global *models.Anuncio
	for i := range anuncios {
		if anuncios[i].ID == anuncioID {
			global = &anuncios[i]
			break
		}
	}

	var result models.LinkOverride
	err = r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		for i := range items {
			if items[i].ID != outdoorID {
				continue
			}
			o := &items[i]
			if !o.Linked(anuncioID) {
				return nil, ErrNotLinked
			}
			ov, ok := o.AnunciosVinculados[anuncioID]
			if !ok {
				if global == nil {
					return nil, ErrAnuncioNotFound
				}
				ov = models.LinkOverride{Titulo: global.Titulo, Duracao: global.Duracao}
			}
			if patch.Titulo != nil {
				ov.Titulo = *patch.Titulo
			}
			if patch.Duracao != nil {
				ov.Duracao = *patch.Duracao
			}
			if o.AnunciosVinculados == nil {
				o.AnunciosVinculados = make(map[string]models.LinkOverride)
			}
			o.AnunciosVinculados[anuncioID] = ov
			result = ov
			return items, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.LinkOverride{}, err
	}
	return result, nil
}

// Unlink removes the anúncio id from the outdoor's link list. The override
// entry, if any, stays on disk: re-linking the anúncio resumes the old
// override, which is the behavior existing data relies on.
func (r *Repository) Unlink(outdoorID int, anuncioID string) error {
	return r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		for i := range items {
			if items[i].ID != outdoorID {
				continue
			}
			o := &items[i]
			for j, id := range o.Anuncios {
				if id == anuncioID {
					o.Anuncios = append(o.Anuncios[:j], o.Anuncios[j+1:]...)
					return items, nil
				}
			}
			return nil, ErrLinkNotFound
		}
		return nil, ErrLinkNotFound
	})
}

// Reorder replaces the outdoor's link list with ordem filtered to the ids
// currently linked: unknown ids are dropped, omitted ids are unlinked, and a
// repeated id keeps its first position only.
func (r *Repository) Reorder(outdoorID int, ordem []string) error {
	return r.outdoors.Update(func(items []models.Outdoor) ([]models.Outdoor, error) {
		for i := range items {
			if items[i].ID != outdoorID {
				continue
			}
			linked := make(map[string]bool, len(items[i].Anuncios))
			for _, id := range items[i].Anuncios {
				linked[id] = true
			}
			next := make([]string, 0, len(ordem))
			for _, id := range ordem {
				if linked[id] {
					next = append(next, id)
					linked[id] = false
				}
			}
			items[i].Anuncios = next
			return items, nil
		}
		return nil, ErrNotFound
	})
}

func (r *Repository) anuncioExists(id string) (bool, error) {
	anuncios, err := r.anuncios.Load()
	if err != nil {
		return false, err
	}
	for _, a := range anuncios {
		if a.ID == id {
			return true, nil
		}
	}
	return false, nil
}
