package models

// Anuncio is an advertisement persisted in anuncios.json.
//
// Arquivo is the stored media filename, nil when the anúncio was created
// without an upload. Media cannot be replaced after creation; deleting the
// record also removes the file from storage.
type Anuncio struct {
	ID      string  `json:"_id"`
	Titulo  string  `json:"titulo"`
	Tipo    string  `json:"tipo"`
	Duracao string  `json:"duracao"`
	Arquivo *string `json:"arquivo"`
}
