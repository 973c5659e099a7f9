package booking

import (
	"testing"

	"joeyjob/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForm() *models.BookingForm {
	return &models.BookingForm{
		ID:             "form-1",
		OrganizationID: "org-1",
		Questions: []models.FormQuestion{
			{FieldID: "q_contact", Label: "Your details", Type: "contact", Required: true},
			{FieldID: "q_address", Label: "Service address", Type: "address", Required: true},
			{FieldID: "q_gate", Label: "Gate access code", Type: "text"},
			{FieldID: "q_pets", Label: "Pets on site?", Type: "text"},
		},
	}
}

func TestResolveResponsesCatalogOrder(t *testing.T) {
	raw := map[string]interface{}{
		"q_pets": "Two dogs",
		"q_gate": "1234",
	}
	resolved := ResolveResponses(testForm(), raw)
	require.Len(t, resolved, 2)
	// Catalog order, not map order.
	assert.Equal(t, "Gate access code", resolved[0].Label)
	assert.Equal(t, "1234", resolved[0].Value)
	assert.Equal(t, "Pets on site?", resolved[1].Label)
}

func TestResolveResponsesUnknownFieldsKept(t *testing.T) {
	raw := map[string]interface{}{
		"q_gate":    "1234",
		"q_zzz":     "extra",
		"q_aaa":     "more",
		"q_ignored": nil,
	}
	resolved := ResolveResponses(testForm(), raw)
	require.Len(t, resolved, 4)
	// Unknown fields trail the catalog entries, sorted by field id, labeled
	// with the raw id since no label exists.
	assert.Equal(t, "q_aaa", resolved[1].FieldID)
	assert.Equal(t, "q_aaa", resolved[1].Label)
	assert.Equal(t, "q_ignored", resolved[2].FieldID)
	assert.Equal(t, "q_zzz", resolved[3].FieldID)
}

func TestRenderNotesSkipsEmptyValues(t *testing.T) {
	notes := RenderNotes([]models.FormResponse{
		{Label: "Gate access code", Value: "1234"},
		{Label: "Pets on site?", Value: ""},
		{Label: "Notes", Value: "Ring the bell"},
	})
	assert.Equal(t, "Gate access code: 1234\nNotes: Ring the bell", notes)
}

func TestExtractCustomer(t *testing.T) {
	raw := map[string]interface{}{
		"q_contact": map[string]interface{}{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@example.com",
			"phone":     "0400000000",
		},
		"q_address": map[string]interface{}{
			"line1":    "1 Example St",
			"city":     "Brisbane",
			"state":    "QLD",
			"postcode": "4000",
			"country":  "Australia",
		},
	}
	customer := ExtractCustomer(testForm(), raw)
	assert.Equal(t, "Ada", customer.FirstName)
	assert.Equal(t, "Lovelace", customer.LastName)
	assert.Equal(t, "ada@example.com", customer.Email)
	assert.Equal(t, "0400000000", customer.Phone)
	assert.Equal(t, "1 Example St", customer.Address.Line1)
	assert.Equal(t, "4000", customer.Address.Postcode)
}

func TestResolveResponsesFlattensNestedValues(t *testing.T) {
	raw := map[string]interface{}{
		"q_contact": map[string]interface{}{
			"firstName": "Ada",
			"email":     "ada@example.com",
		},
	}
	resolved := ResolveResponses(testForm(), raw)
	require.Len(t, resolved, 1)
	// Stable key order regardless of map iteration.
	assert.Equal(t, "email: ada@example.com, firstName: Ada", resolved[0].Value)
}

func TestDeriveKeyDeterministic(t *testing.T) {
	sub := &models.BookingSubmission{
		OrganizationID: "org-1",
		ServiceID:      "svc-1",
		Date:           "2025-09-17",
		Time:           "2:00 pm",
	}
	k1 := DeriveKey(sub, "ada@example.com")
	k2 := DeriveKey(sub, "ada@example.com")
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)

	assert.NotEqual(t, k1, DeriveKey(sub, "other@example.com"))

	other := *sub
	other.Time = "3:00 pm"
	assert.NotEqual(t, k1, DeriveKey(&other, "ada@example.com"))
}
