package models

// Display types accepted for an outdoor.
const (
	TipoLED      = "LED"
	TipoLCD      = "LCD"
	TipoProjetor = "projetor"
)

// LinkOverride holds a per-outdoor local override of a linked anúncio's
// displayed title and duration. It never mutates the global Anuncio record.
type LinkOverride struct {
	Titulo  string `json:"titulo"`
	Duracao string `json:"duracao"`
}

// Outdoor is a billboard persisted in outdoors.json.
//
// Anuncios holds the ids of linked anúncios; slice order is display order and
// ids are unique. AnunciosVinculados keys are ids in Anuncios, except for
// overrides orphaned by an unlink, which are kept on disk untouched.
type Outdoor struct {
	ID                 int                     `json:"id"`
	Nome               string                  `json:"nome"`
	Localizacao        string                  `json:"localizacao"`
	Tipo               string                  `json:"tipo"`
	Usuario            string                  `json:"usuario"`
	Anuncios           []string                `json:"anuncios,omitempty"`
	AnunciosVinculados map[string]LinkOverride `json:"anuncios_vinculados,omitempty"`
}

// Linked reports whether the anúncio id is in the outdoor's link list.
func (o Outdoor) Linked(anuncioID string) bool {
	for _, id := range o.Anuncios {
		if id == anuncioID {
			return true
		}
	}
	return false
}
