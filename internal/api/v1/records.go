package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/domain"
)

type CreateRecordInput struct {
	Body struct {
		ClientID      string  `json:"cliente_id" minLength:"1" doc:"Client ID"`
		ServiceTypeID string  `json:"servico_id" minLength:"1" doc:"Service type ID"`
		Date          string  `json:"data" minLength:"10" maxLength:"10" doc:"Service date, YYYY-MM-DD"`
		AmountPaid    float64 `json:"valor_pago" minimum:"0" doc:"Amount actually paid"`
	}
}

type CreateRecordOutput struct {
	Body *domain.ServiceRecord
}

func RegisterRecordRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "create-record",
		Method:      http.MethodPost,
		Path:        "/records",
		Summary:     "Record a performed service",
		Description: "Snapshots the client and service names at record time; later catalog edits never alter existing records.",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *CreateRecordInput) (*CreateRecordOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		rec, err := svc.Record(ctx, input.Body.ClientID, input.Body.ServiceTypeID, input.Body.Date, input.Body.AmountPaid)
		if err != nil {
			return nil, mapError(err, "invalid service record")
		}

		return &CreateRecordOutput{Body: rec}, nil
	})
}
