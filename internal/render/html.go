package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/domain"
)

const docStyle = `<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; margin-bottom: 2px; }
.muted { color: #666; font-size: 11px; }
.logo { max-height: 64px; margin-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #ccc; padding: 5px 7px; text-align: left; }
th { background: #f0f0f0; }
td.num, th.num { text-align: right; }
tr.total td { font-weight: bold; background: #fafafa; }
.terms { margin-top: 16px; font-size: 11px; }
</style>`

// ReportHTML builds the printable markup for an aggregated report. issuedAt
// stamps the emission time in the footer.
func ReportHTML(report *books.Report, profile *domain.CompanyProfile, issuedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	sb.WriteString(docStyle)
	sb.WriteString("</head><body>")

	writeLetterhead(&sb, profile)

	sb.WriteString("<h1>Relatório de Serviços</h1>")
	sb.WriteString(fmt.Sprintf(`<p class="muted">Período: %s a %s &mdash; Cliente: %s</p>`,
		html.EscapeString(report.From), html.EscapeString(report.To), html.EscapeString(report.ClientLabel)))

	sb.WriteString(`<table><thead><tr><th>Data</th><th>Cliente</th><th>Serviço</th><th class="num">Valor Pago</th></tr></thead><tbody>`)
	if len(report.Records) == 0 {
		sb.WriteString(`<tr><td colspan="4">Nenhum serviço registrado no período.</td></tr>`)
	} else {
		for _, rec := range report.Records {
			sb.WriteString("<tr>")
			sb.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(rec.Date)))
			sb.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(rec.ClientName)))
			sb.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(rec.ServiceName)))
			sb.WriteString(fmt.Sprintf(`<td class="num">%s</td>`, money(rec.AmountPaid)))
			sb.WriteString("</tr>")
		}
	}
	sb.WriteString(fmt.Sprintf(`<tr class="total"><td colspan="3">Total do período</td><td class="num">%s</td></tr>`, money(report.Total)))
	sb.WriteString("</tbody></table>")

	sb.WriteString(fmt.Sprintf(`<p class="muted">Emitido em %s</p>`, issuedAt.Format("02/01/2006 às 15:04")))
	sb.WriteString("</body></html>")

	return sb.String()
}

// QuoteHTML builds the printable markup for a price proposal.
func QuoteHTML(quote *domain.Quote, profile *domain.CompanyProfile) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	sb.WriteString(docStyle)
	sb.WriteString("</head><body>")

	writeLetterhead(&sb, profile)

	sb.WriteString(fmt.Sprintf("<h1>Orçamento %s</h1>", html.EscapeString(quote.Number)))
	sb.WriteString(fmt.Sprintf(`<p class="muted">Cliente: %s &mdash; Emitido em %s</p>`,
		html.EscapeString(quote.ClientName), quote.IssuedAt.Format("02/01/2006")))

	sb.WriteString(`<table><thead><tr><th>Serviço</th><th class="num">Qtd.</th><th class="num">Preço Unitário</th><th class="num">Subtotal</th></tr></thead><tbody>`)
	for _, line := range quote.Lines {
		sb.WriteString("<tr>")
		sb.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(line.ServiceName)))
		sb.WriteString(fmt.Sprintf(`<td class="num">%d</td>`, line.Quantity))
		sb.WriteString(fmt.Sprintf(`<td class="num">%s</td>`, money(line.UnitPrice)))
		sb.WriteString(fmt.Sprintf(`<td class="num">%s</td>`, money(line.Subtotal)))
		sb.WriteString("</tr>")
	}
	sb.WriteString(fmt.Sprintf(`<tr class="total"><td colspan="3">Total</td><td class="num">%s</td></tr>`, money(quote.Total)))
	sb.WriteString("</tbody></table>")

	sb.WriteString(`<div class="terms">`)
	sb.WriteString(fmt.Sprintf("<p>Validade da proposta: %d dias.</p>", quote.ValidityDays))
	if quote.PaymentTerms != "" {
		sb.WriteString(fmt.Sprintf("<p>Condições de pagamento: %s</p>", html.EscapeString(quote.PaymentTerms)))
	}
	if quote.Notes != "" {
		sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(quote.Notes)))
	}
	sb.WriteString("</div>")

	sb.WriteString("</body></html>")

	return sb.String()
}

func writeLetterhead(sb *strings.Builder, profile *domain.CompanyProfile) {
	if profile == nil {
		return
	}
	if profile.LogoData != "" {
		mime := profile.LogoMime
		if mime == "" {
			mime = "image/png"
		}
		sb.WriteString(fmt.Sprintf(`<img class="logo" src="data:%s;base64,%s" alt="">`, mime, profile.LogoData))
	}
	if profile.DisplayName != "" {
		sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(profile.DisplayName)))
	}
	var contact []string
	for _, field := range []string{profile.Phone, profile.Email, profile.TaxID, profile.Address} {
		if field != "" {
			contact = append(contact, html.EscapeString(field))
		}
	}
	if len(contact) > 0 {
		sb.WriteString(fmt.Sprintf(`<p class="muted">%s</p>`, strings.Join(contact, " &middot; ")))
	}
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
