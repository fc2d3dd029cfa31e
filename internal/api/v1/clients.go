package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/domain"
)

type CreateClientInput struct {
	Body struct {
		Name    string `json:"nome" minLength:"1" maxLength:"255" doc:"Client name"`
		Phone   string `json:"telefone,omitempty" maxLength:"50" doc:"Phone number"`
		Email   string `json:"email,omitempty" maxLength:"255" doc:"Email address"`
		Address string `json:"endereco,omitempty" maxLength:"500" doc:"Address"`
		Notes   string `json:"observacoes,omitempty" maxLength:"2000" doc:"Free-form notes"`
	}
}

type CreateClientOutput struct {
	Body *domain.Client
}

type ListClientsOutput struct {
	Body []domain.Client
}

type GetClientInput struct {
	ID string `path:"id" doc:"Client ID"`
}

type GetClientOutput struct {
	Body *domain.Client
}

type UpdateClientInput struct {
	ID   string `path:"id" doc:"Client ID"`
	Body struct {
		Name    string `json:"nome" minLength:"1" maxLength:"255" doc:"Client name"`
		Phone   string `json:"telefone,omitempty" maxLength:"50" doc:"Phone number"`
		Email   string `json:"email,omitempty" maxLength:"255" doc:"Email address"`
		Address string `json:"endereco,omitempty" maxLength:"500" doc:"Address"`
		Notes   string `json:"observacoes,omitempty" maxLength:"2000" doc:"Free-form notes"`
	}
}

type UpdateClientOutput struct {
	Body *domain.Client
}

type DeleteClientInput struct {
	ID string `path:"id" doc:"Client ID"`
}

type ClientHistoryInput struct {
	ID string `path:"id" doc:"Client ID"`
}

type ClientHistoryOutput struct {
	Body struct {
		Client  *domain.Client         `json:"cliente"`
		Records []domain.ServiceRecord `json:"servicos"`
		Total   float64                `json:"total"`
	}
}

func RegisterClientRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "list-clients",
		Method:      http.MethodGet,
		Path:        "/clients",
		Summary:     "List clients ordered by name",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, _ *struct{}) (*ListClientsOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		clients, err := svc.ListClients(ctx)
		if err != nil {
			return nil, mapError(err, "failed to list clients")
		}

		return &ListClientsOutput{Body: clients}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-client",
		Method:      http.MethodPost,
		Path:        "/clients",
		Summary:     "Create a client",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *CreateClientInput) (*CreateClientOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		c, err := domain.NewClient(input.Body.Name, input.Body.Phone, input.Body.Email, input.Body.Address, input.Body.Notes)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid client", err)
		}

		id, err := svc.CreateClient(ctx, c)
		if err != nil {
			return nil, mapError(err, "failed to create client")
		}
		c.ID = id

		return &CreateClientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-client",
		Method:      http.MethodGet,
		Path:        "/clients/{id}",
		Summary:     "Get a client by ID",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *GetClientInput) (*GetClientOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		c, err := svc.GetClient(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "client not found")
		}

		return &GetClientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-client",
		Method:      http.MethodPut,
		Path:        "/clients/{id}",
		Summary:     "Update a client",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *UpdateClientInput) (*UpdateClientOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		c, err := domain.NewClient(input.Body.Name, input.Body.Phone, input.Body.Email, input.Body.Address, input.Body.Notes)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid client", err)
		}

		if err := svc.UpdateClient(ctx, input.ID, c); err != nil {
			return nil, mapError(err, "client not found")
		}
		c.ID = input.ID

		return &UpdateClientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-client",
		Method:        http.MethodDelete,
		Path:          "/clients/{id}",
		Summary:       "Delete a client",
		Tags:          []string{"Clients"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteClientInput) (*struct{}, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		if err := svc.DeleteClient(ctx, input.ID); err != nil {
			return nil, mapError(err, "client has service history and cannot be deleted")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "client-history",
		Method:      http.MethodGet,
		Path:        "/clients/{id}/history",
		Summary:     "Get a client with its full service history",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *ClientHistoryInput) (*ClientHistoryOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		client, records, total, err := svc.ClientHistory(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "client not found")
		}

		out := &ClientHistoryOutput{}
		out.Body.Client = client
		out.Body.Records = records
		out.Body.Total = total
		return out, nil
	})
}
