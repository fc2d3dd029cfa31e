package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/domain"
)

type CreateServiceTypeInput struct {
	Body struct {
		Name           string  `json:"nome" minLength:"1" maxLength:"255" doc:"Service name"`
		Category       string  `json:"categoria,omitempty" maxLength:"100" doc:"Category, or the Other sentinel"`
		CustomCategory string  `json:"categoria_custom,omitempty" maxLength:"100" doc:"Free-text category used when categoria is the Other sentinel"`
		StandardPrice  float64 `json:"preco_padrao" minimum:"0" doc:"List price"`
	}
}

type CreateServiceTypeOutput struct {
	Body *domain.ServiceType
}

type ListServiceTypesOutput struct {
	Body []domain.ServiceType
}

type GetServiceTypeInput struct {
	ID string `path:"id" doc:"Service type ID"`
}

type GetServiceTypeOutput struct {
	Body *domain.ServiceType
}

type UpdateServiceTypeInput struct {
	ID   string `path:"id" doc:"Service type ID"`
	Body struct {
		Name           string  `json:"nome" minLength:"1" maxLength:"255" doc:"Service name"`
		Category       string  `json:"categoria,omitempty" maxLength:"100" doc:"Category, or the Other sentinel"`
		CustomCategory string  `json:"categoria_custom,omitempty" maxLength:"100" doc:"Free-text category used when categoria is the Other sentinel"`
		StandardPrice  float64 `json:"preco_padrao" minimum:"0" doc:"List price"`
	}
}

type UpdateServiceTypeOutput struct {
	Body *domain.ServiceType
}

type DeleteServiceTypeInput struct {
	ID string `path:"id" doc:"Service type ID"`
}

type ServicePriceInput struct {
	ID string `path:"id" doc:"Service type ID"`
}

type ServicePriceOutput struct {
	Body struct {
		Price float64 `json:"preco"`
	}
}

func RegisterServiceTypeRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "list-service-types",
		Method:      http.MethodGet,
		Path:        "/service-types",
		Summary:     "List service types ordered by category and name",
		Tags:        []string{"ServiceTypes"},
	}, func(ctx context.Context, _ *struct{}) (*ListServiceTypesOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		types, err := svc.ListServiceTypes(ctx)
		if err != nil {
			return nil, mapError(err, "failed to list service types")
		}

		return &ListServiceTypesOutput{Body: types}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-service-type",
		Method:      http.MethodPost,
		Path:        "/service-types",
		Summary:     "Create a service type",
		Tags:        []string{"ServiceTypes"},
	}, func(ctx context.Context, input *CreateServiceTypeInput) (*CreateServiceTypeOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		st, err := domain.NewServiceType(input.Body.Name, input.Body.Category, input.Body.CustomCategory, input.Body.StandardPrice)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid service type", err)
		}

		id, err := svc.CreateServiceType(ctx, st)
		if err != nil {
			return nil, mapError(err, "failed to create service type")
		}
		st.ID = id

		return &CreateServiceTypeOutput{Body: st}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-service-type",
		Method:      http.MethodGet,
		Path:        "/service-types/{id}",
		Summary:     "Get a service type by ID",
		Tags:        []string{"ServiceTypes"},
	}, func(ctx context.Context, input *GetServiceTypeInput) (*GetServiceTypeOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		st, err := svc.GetServiceType(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "service type not found")
		}

		return &GetServiceTypeOutput{Body: st}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-service-type",
		Method:      http.MethodPut,
		Path:        "/service-types/{id}",
		Summary:     "Update a service type",
		Tags:        []string{"ServiceTypes"},
	}, func(ctx context.Context, input *UpdateServiceTypeInput) (*UpdateServiceTypeOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		st, err := domain.NewServiceType(input.Body.Name, input.Body.Category, input.Body.CustomCategory, input.Body.StandardPrice)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid service type", err)
		}

		if err := svc.UpdateServiceType(ctx, input.ID, st); err != nil {
			return nil, mapError(err, "service type not found")
		}
		st.ID = input.ID

		return &UpdateServiceTypeOutput{Body: st}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-service-type",
		Method:        http.MethodDelete,
		Path:          "/service-types/{id}",
		Summary:       "Delete a service type",
		Tags:          []string{"ServiceTypes"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteServiceTypeInput) (*struct{}, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		if err := svc.DeleteServiceType(ctx, input.ID); err != nil {
			return nil, mapError(err, "service type has service history and cannot be deleted")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "service-type-price",
		Method:      http.MethodGet,
		Path:        "/service-types/{id}/price",
		Summary:     "Get the current list price of a service type",
		Tags:        []string{"ServiceTypes"},
	}, func(ctx context.Context, input *ServicePriceInput) (*ServicePriceOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		price, err := svc.ServicePrice(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "service type not found")
		}

		out := &ServicePriceOutput{}
		out.Body.Price = price
		return out, nil
	})
}
