package domain

import "time"

// Quote is an on-demand price proposal computed from live catalog prices.
// Unlike a ServiceRecord it is not persisted; the composer rereads the catalog
// on every generation.
type Quote struct {
	Number       string      `json:"numero"`
	IssuedAt     time.Time   `json:"emitido_em"`
	ClientID     string      `json:"cliente_id"`
	ClientName   string      `json:"cliente_nome"`
	Lines        []QuoteLine `json:"itens"`
	Total        float64     `json:"total"`
	ValidityDays int         `json:"validade_dias"`
	PaymentTerms string      `json:"condicoes_pagamento,omitempty"`
	Notes        string      `json:"observacoes,omitempty"`
}

// QuoteLine is one priced line item: Subtotal = UnitPrice * Quantity.
type QuoteLine struct {
	ServiceTypeID string  `json:"servico_id"`
	ServiceName   string  `json:"servico_nome"`
	Quantity      int     `json:"quantidade"`
	UnitPrice     float64 `json:"preco_unitario"`
	Subtotal      float64 `json:"subtotal"`
}

// NewQuoteNumber derives a quote identifier from the issue timestamp truncated
// to the minute, matching the numbers the business already has on file. Two
// quotes issued by the same tenant within the same minute therefore share a
// number; callers that need uniqueness must not rely on it.
func NewQuoteNumber(t time.Time) string {
	return "ORC-" + t.Format("200601021504")
}
