package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/render"
)

type GetReportInput struct {
	From     string `query:"from" doc:"Start date YYYY-MM-DD, inclusive; defaults to the first of the current month"`
	To       string `query:"to" doc:"End date YYYY-MM-DD, inclusive; defaults to today"`
	ClientID string `query:"client_id" doc:"Restrict to one client; 'todos' or empty means all clients"`
}

type GetReportOutput struct {
	Body *books.Report
}

type ReportPDFOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func RegisterReportRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/reports",
		Summary:     "Aggregate service records over a date range",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *GetReportInput) (*GetReportOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		report, err := svc.Aggregate(ctx, input.From, input.To, input.ClientID)
		if err != nil {
			return nil, mapError(err, "invalid report range")
		}

		return &GetReportOutput{Body: report}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-report-pdf",
		Method:      http.MethodGet,
		Path:        "/reports/pdf",
		Summary:     "Download the report as a PDF",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *GetReportInput) (*ReportPDFOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		report, err := svc.Aggregate(ctx, input.From, input.To, input.ClientID)
		if err != nil {
			return nil, mapError(err, "invalid report range")
		}

		profile, err := svc.Profile(ctx)
		if err != nil {
			return nil, mapError(err, "failed to load company profile")
		}

		html := render.ReportHTML(report, profile, time.Now())

		pdf, err := deps.Renderer.Render(ctx, html, render.Options{})
		if err != nil {
			return nil, mapError(err, "failed to render report")
		}

		return &ReportPDFOutput{
			ContentType:        "application/pdf",
			ContentDisposition: fmt.Sprintf("attachment; filename=relatorio_%s_a_%s.pdf", report.From, report.To),
			Body:               pdf,
		}, nil
	})
}
