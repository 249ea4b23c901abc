package domain

import "errors"

var ErrEmptyNarrative = errors.New("serviço de narrativa devolveu texto vazio")

// Prompt é o payload enviado ao serviço de narrativa.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

type InsightResponse struct {
	Report    *Report `json:"report"`
	Narrative string  `json:"narrative"`
	Model     string  `json:"model,omitempty"`
}
