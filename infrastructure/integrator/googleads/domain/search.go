package domain

// Estruturas do endpoint customers/{id}/googleAds:search da API REST do Google Ads.

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

// SearchResponse mantém cada resultado como mapa aninhado: os campos vêm em camelCase e
// dependem do SELECT enviado.
type SearchResponse struct {
	Results       []map[string]any `json:"results"`
	NextPageToken string           `json:"nextPageToken"`
	FieldMask     string           `json:"fieldMask"`
}
