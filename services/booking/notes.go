package booking

import (
	"fmt"
	"sort"
	"strings"

	"joeyjob/models"
)

// ResolveResponses turns the raw submission map (keyed by generated field
// ids) into denormalized {fieldID, label, value} entries, resolving labels
// against the form's question catalog. Entries are ordered by the catalog;
// responses for unknown fields are appended last by field id so nothing the
// customer typed is silently dropped.
func ResolveResponses(form *models.BookingForm, raw map[string]interface{}) []models.FormResponse {
	var resolved []models.FormResponse
	seen := make(map[string]bool, len(raw))

	for _, q := range form.Questions {
		value, ok := raw[q.FieldID]
		if !ok {
			continue
		}
		seen[q.FieldID] = true
		// Contact and address sub-objects are extracted separately; their
		// flattened rendering here keeps the notes readable.
		resolved = append(resolved, models.FormResponse{
			FieldID: q.FieldID,
			Label:   q.Label,
			Value:   flattenValue(value),
		})
	}

	var unknown []string
	for fieldID := range raw {
		if !seen[fieldID] {
			unknown = append(unknown, fieldID)
		}
	}
	sort.Strings(unknown)
	for _, fieldID := range unknown {
		resolved = append(resolved, models.FormResponse{
			FieldID: fieldID,
			Label:   fieldID,
			Value:   flattenValue(raw[fieldID]),
		})
	}

	return resolved
}

// RenderNotes produces the human-readable question/answer block sent to the
// external system, using resolved labels rather than raw field ids.
func RenderNotes(responses []models.FormResponse) string {
	var b strings.Builder
	for _, r := range responses {
		if r.Value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExtractCustomer pulls the structured contact and address sub-objects out of
// the raw responses, using the question catalog to find which generated
// field ids carry them.
func ExtractCustomer(form *models.BookingForm, raw map[string]interface{}) models.Customer {
	var customer models.Customer
	for _, q := range form.Questions {
		value, ok := raw[q.FieldID]
		if !ok {
			continue
		}
		switch q.Type {
		case "contact":
			if m, ok := value.(map[string]interface{}); ok {
				customer.FirstName = stringField(m, "firstName")
				customer.LastName = stringField(m, "lastName")
				customer.Email = stringField(m, "email")
				customer.Phone = stringField(m, "phone")
			}
		case "address":
			if m, ok := value.(map[string]interface{}); ok {
				customer.Address = models.Address{
					Line1:    stringField(m, "line1"),
					Line2:    stringField(m, "line2"),
					City:     stringField(m, "city"),
					State:    stringField(m, "state"),
					Postcode: stringField(m, "postcode"),
					Country:  stringField(m, "country"),
				}
			}
		}
	}
	return customer
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// flattenValue renders a response value for display. Nested objects become
// "key: value" pairs in stable key order.
func flattenValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			s := flattenValue(v[k])
			if s == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", k, s))
		}
		return strings.Join(parts, ", ")
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, flattenValue(item))
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
