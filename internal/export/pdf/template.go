package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/salasintercc/expo-admin-api/internal/export"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Exhibitor.Name}} - Stand Configuration</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .meta { color: #616e7c; font-size: 12px; margin-bottom: 24px; }
  .section { border: 1px solid #d3dce6; border-radius: 6px; padding: 16px; margin-bottom: 16px; }
  .section h2 { font-size: 16px; margin: 0 0 8px; }
  .status { font-size: 11px; text-transform: uppercase; color: #616e7c; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #e4e9f0; vertical-align: top; }
  .price { text-align: right; white-space: nowrap; }
  .totals { margin-top: 8px; font-size: 13px; text-align: right; }
  .grand-total { font-size: 16px; font-weight: bold; margin-top: 16px; text-align: right; }
</style>
</head>
<body>
<h1>{{.Exhibitor.Name}}</h1>
<div class="meta">
  {{.Exhibitor.Email}} &middot; {{.Event.Name}} &middot; exported {{.ExportDate.Format "02 Jan 2006 15:04"}}
</div>

{{range .Configurations}}
<div class="section">
  <h2>{{.Type.Title}}</h2>
  <div class="status">
    {{if .IsSubmitted}}submitted{{else}}draft{{end}} &middot; payment {{.PaymentStatus}}
  </div>
  <table>
    <tr><th>Item</th><th>Response</th><th class="price">Price</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Label}}</td>
      <td>{{formatResponse .Response}}</td>
      <td class="price">{{formatPrice .Response}}</td>
    </tr>
    {{end}}
  </table>
  <div class="totals">Total: {{printf "%.2f" .TotalPrice}}</div>
</div>
{{end}}

{{if .GrandTotal}}
<div class="grand-total">Grand total: {{formatTotal .GrandTotal}}</div>
{{end}}
</body>
</html>`

var tmpl = template.Must(template.New("export").Funcs(template.FuncMap{
	"formatResponse": formatResponse,
	"formatPrice":    formatPrice,
	"formatTotal":    formatTotal,
}).Parse(documentTemplate))

func formatTotal(total *float64) string {
	if total == nil {
		return ""
	}

	return fmt.Sprintf("%.2f", *total)
}

func formatResponse(response any) string {
	switch v := response.(type) {
	case string:
		return v
	case []export.ResolvedSelection:
		out := ""
		for i, sel := range v {
			if i > 0 {
				out += ", "
			}
			out += sel.Label
		}

		return out
	default:
		return ""
	}
}

func formatPrice(response any) string {
	selections, ok := response.([]export.ResolvedSelection)
	if !ok {
		return "-"
	}

	total := 0.0
	for _, sel := range selections {
		total += sel.Price
	}

	return fmt.Sprintf("%.2f", total)
}

func renderHTML(doc export.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("tmpl.Execute -> %w", err)
	}

	return buf.Bytes(), nil
}
