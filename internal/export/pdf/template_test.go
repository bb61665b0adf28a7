package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/export"
)

func TestRenderHTML(t *testing.T) {
	grandTotal := 350.0
	doc := export.Document{
		Exhibitor:  export.Exhibitor{ID: 7, Email: "jane@acme.test", Name: "Jane"},
		Event:      export.EventInfo{ID: 10, Name: "Berlin Expo 2026"},
		ExportDate: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		GrandTotal: &grandTotal,
		Configurations: []export.Section{
			{
				Type:          export.SectionType{ID: 1, Title: "Booth Package"},
				IsSubmitted:   true,
				PaymentStatus: domain.PaymentPending,
				TotalPrice:    250,
				Items: []export.ResolvedItem{
					{Label: "Company Name", Type: domain.ItemTypeText, Response: "ACME Corp"},
					{
						Label: "Booth Size",
						Type:  domain.ItemTypeSelect,
						Response: []export.ResolvedSelection{
							{ID: "b", Label: "Premium", Price: 250},
						},
					},
				},
			},
		},
	}

	html, err := renderHTML(doc)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "Berlin Expo 2026")
	assert.Contains(t, out, "Booth Package")
	assert.Contains(t, out, "ACME Corp")
	assert.Contains(t, out, "Premium")
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "Grand total: 350.00")
	assert.Contains(t, out, "payment pending")
}
