package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/domain"
	"github.com/cadernoapp/caderno/internal/render"
)

type quoteItemInput struct {
	ServiceTypeID string `json:"servico_id" minLength:"1" doc:"Service type ID"`
	Quantity      int    `json:"quantidade" minimum:"1" doc:"Quantity"`
}

type ComposeQuoteInput struct {
	Body struct {
		ClientID     string           `json:"cliente_id" minLength:"1" doc:"Client ID"`
		Items        []quoteItemInput `json:"itens" minItems:"1" doc:"Quote line items"`
		ValidityDays int              `json:"validade_dias,omitempty" doc:"Validity in days; defaults to 30"`
		PaymentTerms string           `json:"condicoes_pagamento,omitempty" maxLength:"500" doc:"Payment terms"`
		Notes        string           `json:"observacoes,omitempty" maxLength:"2000" doc:"Free-form notes"`
	}
}

type ComposeQuoteOutput struct {
	Body *domain.Quote
}

type QuotePDFOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func quoteItems(in []quoteItemInput) []books.QuoteItem {
	items := make([]books.QuoteItem, 0, len(in))
	for _, it := range in {
		items = append(items, books.QuoteItem{ServiceTypeID: it.ServiceTypeID, Quantity: it.Quantity})
	}
	return items
}

func RegisterQuoteRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "compose-quote",
		Method:      http.MethodPost,
		Path:        "/quotes",
		Summary:     "Compose a quote with live catalog prices",
		Tags:        []string{"Quotes"},
	}, func(ctx context.Context, input *ComposeQuoteInput) (*ComposeQuoteOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		quote, err := svc.ComposeQuote(ctx, input.Body.ClientID, quoteItems(input.Body.Items),
			input.Body.ValidityDays, input.Body.PaymentTerms, input.Body.Notes)
		if err != nil {
			return nil, mapError(err, "invalid quote")
		}

		return &ComposeQuoteOutput{Body: quote}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "compose-quote-pdf",
		Method:      http.MethodPost,
		Path:        "/quotes/pdf",
		Summary:     "Compose a quote and download it as a PDF",
		Tags:        []string{"Quotes"},
	}, func(ctx context.Context, input *ComposeQuoteInput) (*QuotePDFOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		quote, err := svc.ComposeQuote(ctx, input.Body.ClientID, quoteItems(input.Body.Items),
			input.Body.ValidityDays, input.Body.PaymentTerms, input.Body.Notes)
		if err != nil {
			return nil, mapError(err, "invalid quote")
		}

		profile, err := svc.Profile(ctx)
		if err != nil {
			return nil, mapError(err, "failed to load company profile")
		}

		html := render.QuoteHTML(quote, profile)

		pdf, err := deps.Renderer.Render(ctx, html, render.Options{})
		if err != nil {
			return nil, mapError(err, "failed to render quote")
		}

		return &QuotePDFOutput{
			ContentType:        "application/pdf",
			ContentDisposition: "attachment; filename=" + quote.Number + ".pdf",
			Body:               pdf,
		}, nil
	})
}
