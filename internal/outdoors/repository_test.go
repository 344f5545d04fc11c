package outdoors

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/pkg/jsonstore"
)

type env struct {
	repo     *Repository
	anuncios *jsonstore.Collection[models.Anuncio]
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	outdoorsCol := jsonstore.NewCollection[models.Outdoor](dir, "outdoors.json", zap.NewNop())
	anunciosCol := jsonstore.NewCollection[models.Anuncio](dir, "anuncios.json", zap.NewNop())
	return &env{
		repo:     NewRepository(outdoorsCol, anunciosCol),
		anuncios: anunciosCol,
	}
}

func (e *env) seedAnuncio(t *testing.T, id, titulo, duracao string) {
	t.Helper()
	err := e.anuncios.Update(func(items []models.Anuncio) ([]models.Anuncio, error) {
		return append(items, models.Anuncio{ID: id, Titulo: titulo, Duracao: duracao}), nil
	})
	if err != nil {
		t.Fatalf("seed anuncio %s: %v", id, err)
	}
}

func (e *env) removeAnuncio(t *testing.T, id string) {
	t.Helper()
	err := e.anuncios.Update(func(items []models.Anuncio) ([]models.Anuncio, error) {
		kept := items[:0]
		for _, a := range items {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return kept, nil
	})
	if err != nil {
		t.Fatalf("remove anuncio %s: %v", id, err)
	}
}

func (e *env) createOutdoor(t *testing.T) models.Outdoor {
	t.Helper()
	o, err := e.repo.Create("Outdoor Centro", "Av. Paulista", "LED", "ana@example.com")
	if err != nil {
		t.Fatalf("create outdoor: %v", err)
	}
	return o
}

func TestCreateNormalizesTipo(t *testing.T) {
	e := newEnv(t)

	cases := []struct{ in, want string }{
		{"led", "LED"},
		{"Lcd", "LCD"},
		{"Projetor", "projetor"},
		{"PROJETOR", "projetor"},
	}
	for _, tc := range cases {
		o, err := e.repo.Create("O", "L", tc.in, "u")
		if err != nil {
			t.Fatalf("create with tipo %q: %v", tc.in, err)
		}
		if o.Tipo != tc.want {
			t.Errorf("tipo %q normalized to %q, want %q", tc.in, o.Tipo, tc.want)
		}
	}

	if _, err := e.repo.Create("O", "L", "XYZ", "u"); !errors.Is(err, ErrInvalidTipo) {
		t.Errorf("tipo XYZ: expected ErrInvalidTipo, got %v", err)
	}
}

func TestSequentialIDs(t *testing.T) {
	e := newEnv(t)

	for want := 1; want <= 3; want++ {
		o := e.createOutdoor(t)
		if o.ID != want {
			t.Fatalf("expected id %d, got %d", want, o.ID)
		}
	}

	if err := e.repo.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	o := e.createOutdoor(t)
	if o.ID != 4 {
		t.Errorf("id after deleting 2: expected 4 (max+1, no reuse), got %d", o.ID)
	}
}

func TestDeleteMissing(t *testing.T) {
	e := newEnv(t)
	if err := e.repo.Delete(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePatchesOnlyProvided(t *testing.T) {
	e := newEnv(t)
	o := e.createOutdoor(t)

	nome := "Novo Nome"
	got, err := e.repo.Update(o.ID, UpdateParams{Nome: &nome})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Nome != "Novo Nome" {
		t.Errorf("nome not updated: %q", got.Nome)
	}
	if got.Localizacao != o.Localizacao || got.Tipo != o.Tipo || got.Usuario != o.Usuario {
		t.Errorf("untouched fields changed: %+v", got)
	}

	if _, err := e.repo.Update(99, UpdateParams{Nome: &nome}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUsuario(t *testing.T) {
	e := newEnv(t)
	e.createOutdoor(t)
	if _, err := e.repo.Create("Outro", "Rua B", "LCD", "beto@example.com"); err != nil {
		t.Fatalf("create: %v", err)
	}

	meus, err := e.repo.ListByUsuario("ana@example.com")
	if err != nil {
		t.Fatalf("list by usuario: %v", err)
	}
	if len(meus) != 1 || meus[0].Usuario != "ana@example.com" {
		t.Errorf("unexpected filter result: %+v", meus)
	}
}

func TestLinkIdempotent(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo", "10")
	o := e.createOutdoor(t)

	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("second link: %v", err)
	}

	got, err := e.repo.Get(o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Anuncios) != 1 || got.Anuncios[0] != "a1" {
		t.Errorf("expected exactly one link to a1, got %v", got.Anuncios)
	}
}

func TestLinkMissingTarget(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo", "10")
	o := e.createOutdoor(t)

	if err := e.repo.Link(o.ID, "nope"); !errors.Is(err, ErrLinkTargetNotFound) {
		t.Errorf("link unknown anuncio: expected ErrLinkTargetNotFound, got %v", err)
	}
	if err := e.repo.Link(99, "a1"); !errors.Is(err, ErrLinkTargetNotFound) {
		t.Errorf("link to unknown outdoor: expected ErrLinkTargetNotFound, got %v", err)
	}
}

func TestReorderFiltersToLinked(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "x", "X", "5")
	e.seedAnuncio(t, "y", "Y", "5")
	o := e.createOutdoor(t)
	for _, id := range []string{"x", "y"} {
		if err := e.repo.Link(o.ID, id); err != nil {
			t.Fatalf("link %s: %v", id, err)
		}
	}

	// Unknown ids are dropped from the new order.
	if err := e.repo.Reorder(o.ID, []string{"y", "z", "x"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got, _ := e.repo.Get(o.ID)
	if len(got.Anuncios) != 2 || got.Anuncios[0] != "y" || got.Anuncios[1] != "x" {
		t.Fatalf("expected [y x], got %v", got.Anuncios)
	}

	// Omitted ids are unlinked.
	if err := e.repo.Reorder(o.ID, []string{"x"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got, _ = e.repo.Get(o.ID)
	if len(got.Anuncios) != 1 || got.Anuncios[0] != "x" {
		t.Errorf("expected [x], got %v", got.Anuncios)
	}

	if err := e.repo.Reorder(99, []string{"x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("reorder unknown outdoor: expected ErrNotFound, got %v", err)
	}
}

func TestOverrideSeedThenPatch(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo Global", "10")
	o := e.createOutdoor(t)
	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("link: %v", err)
	}

	titulo := "Promo Local"
	ov, err := e.repo.PatchOverride(o.ID, "a1", OverridePatch{Titulo: &titulo})
	if err != nil {
		t.Fatalf("first patch: %v", err)
	}
	if ov.Titulo != "Promo Local" || ov.Duracao != "10" {
		t.Fatalf("first patch should seed duracao from the global record: %+v", ov)
	}

	duracao := "25"
	ov, err = e.repo.PatchOverride(o.ID, "a1", OverridePatch{Duracao: &duracao})
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}
	if ov.Titulo != "Promo Local" || ov.Duracao != "25" {
		t.Errorf("second patch must keep the earlier override field: %+v", ov)
	}
}

func TestOverrideRequiresLink(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo", "10")
	o := e.createOutdoor(t)

	titulo := "x"
	if _, err := e.repo.PatchOverride(o.ID, "a1", OverridePatch{Titulo: &titulo}); !errors.Is(err, ErrNotLinked) {
		t.Errorf("expected ErrNotLinked, got %v", err)
	}
}

func TestOverrideSeedMissingGlobal(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo", "10")
	o := e.createOutdoor(t)
	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("link: %v", err)
	}
	e.removeAnuncio(t, "a1")

	titulo := "x"
	if _, err := e.repo.PatchOverride(o.ID, "a1", OverridePatch{Titulo: &titulo}); !errors.Is(err, ErrAnuncioNotFound) {
		t.Errorf("expected ErrAnuncioNotFound when no record exists to seed from, got %v", err)
	}
}

func TestLinkedAnunciosOrderOverridesAndDangling(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Primeiro", "10")
	e.seedAnuncio(t, "a2", "Segundo", "20")
	e.seedAnuncio(t, "a3", "Terceiro", "30")
	o := e.createOutdoor(t)
	for _, id := range []string{"a3", "a1", "a2"} {
		if err := e.repo.Link(o.ID, id); err != nil {
			t.Fatalf("link %s: %v", id, err)
		}
	}

	titulo := "Primeiro (local)"
	if _, err := e.repo.PatchOverride(o.ID, "a1", OverridePatch{Titulo: &titulo}); err != nil {
		t.Fatalf("patch override: %v", err)
	}

	// a2 deleted after linking: its id dangles and is skipped silently.
	e.removeAnuncio(t, "a2")

	got, err := e.repo.LinkedAnuncios(o.ID)
	if err != nil {
		t.Fatalf("linked anuncios: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 resolved anuncios, got %d", len(got))
	}
	if got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("link order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Titulo != "Primeiro (local)" || got[1].Duracao != "10" {
		t.Errorf("override not applied to resolved copy: %+v", got[1])
	}

	if _, err := e.repo.LinkedAnuncios(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUnlinkKeepsOverride(t *testing.T) {
	e := newEnv(t)
	e.seedAnuncio(t, "a1", "Promo", "10")
	o := e.createOutdoor(t)
	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("link: %v", err)
	}
	titulo := "Local"
	if _, err := e.repo.PatchOverride(o.ID, "a1", OverridePatch{Titulo: &titulo}); err != nil {
		t.Fatalf("patch override: %v", err)
	}

	if err := e.repo.Unlink(o.ID, "a1"); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	got, _ := e.repo.Get(o.ID)
	if len(got.Anuncios) != 0 {
		t.Fatalf("link not removed: %v", got.Anuncios)
	}
	if _, ok := got.AnunciosVinculados["a1"]; !ok {
		t.Errorf("override entry should stay after unlink")
	}

	// Re-linking resumes the stored override.
	if err := e.repo.Link(o.ID, "a1"); err != nil {
		t.Fatalf("re-link: %v", err)
	}
	resolved, err := e.repo.LinkedAnuncios(o.ID)
	if err != nil {
		t.Fatalf("linked anuncios: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Titulo != "Local" {
		t.Errorf("old override not applied after re-link: %+v", resolved)
	}
}

func TestUnlinkMissing(t *testing.T) {
	e := newEnv(t)
	o := e.createOutdoor(t)

	if err := e.repo.Unlink(o.ID, "a1"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("unlink without link: expected ErrLinkNotFound, got %v", err)
	}
	if err := e.repo.Unlink(99, "a1"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("unlink on unknown outdoor: expected ErrLinkNotFound, got %v", err)
	}
}
