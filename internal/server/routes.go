package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/cadernoapp/caderno/internal/api/v1"
)

func registerAuthRoutes(api huma.API, deps *v1.Deps) {
	v1.RegisterAuthRoutes(api, deps)
}

func registerAPIRoutes(api huma.API, deps *v1.Deps) {
	v1.RegisterClientRoutes(api, deps)
	v1.RegisterServiceTypeRoutes(api, deps)
	v1.RegisterRecordRoutes(api, deps)
	v1.RegisterReportRoutes(api, deps)
	v1.RegisterQuoteRoutes(api, deps)
	v1.RegisterProfileRoutes(api, deps)
}
