package validate

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	return map[string]any{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane.doe@example.com",
		"phone":            "(316) 350-4020",
		"dateOfBirth":      "1991-04-12",
		"ssn":              "123-45-6789",
		"propertyType":     "apartment",
		"bedrooms":         "2",
		"maxRent":          float64(750),
		"moveInDate":       "2026-10-01",
		"leaseTerm":        "12-months",
		"employer":         "Acme Corp",
		"position":         "Engineer",
		"monthlyIncome":    float64(4200),
		"employmentLength": "3-years",
		"reference1Name":   "Sam Smith",
		"reference1Phone":  "316-555-0101",
	}
}

func pdfDataURI(size int) string {
	if size <= 0 {
		return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))
	}
	return "data:application/pdf;base64," + strings.Repeat("A", size)
}

func TestSubmissionValid(t *testing.T) {
	sub, result := Submission(validPayload())
	require.True(t, result.Valid, "unexpected errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Jane", sub.FirstName)
	assert.Equal(t, "apartment", sub.PropertyType)
	require.NotNil(t, sub.MaxRent)
	assert.Equal(t, float64(750), *sub.MaxRent)
}

func TestRequiredFields(t *testing.T) {
	for _, field := range requiredFields {
		t.Run(field, func(t *testing.T) {
			payload := validPayload()
			delete(payload, field)
			_, result := Submission(payload)
			require.False(t, result.Valid)
			assert.Equal(t, field+" is required", result.Errors[field])

			payload[field] = "   "
			_, result = Submission(payload)
			require.False(t, result.Valid)
			assert.Contains(t, result.Errors, field)
		})
	}
}

func TestEmail(t *testing.T) {
	payload := validPayload()
	payload["email"] = "not-an-email"
	_, result := Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "Invalid email format", result.Errors["email"])

	payload["email"] = "a@b.co"
	_, result = Submission(payload)
	assert.NotContains(t, result.Errors, "email")
}

func TestPhone(t *testing.T) {
	assert.True(t, ValidPhone("(316) 350-4020"))
	assert.True(t, ValidPhone("+13163504020"))
	assert.False(t, ValidPhone("123"))
	assert.False(t, ValidPhone("0000000000"))
	// The length floor counts a leading +, same as the form's own check.
	assert.True(t, ValidPhone("+123456789"))
	assert.False(t, ValidPhone("123456789"))

	payload := validPayload()
	payload["phone"] = "123"
	_, result := Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "Invalid phone number format", result.Errors["phone"])
}

func TestSSN(t *testing.T) {
	for _, ssn := range []string{"123-45-6789", "123456789"} {
		payload := validPayload()
		payload["ssn"] = ssn
		_, result := Submission(payload)
		assert.NotContains(t, result.Errors, "ssn", "ssn %q should pass", ssn)
	}

	payload := validPayload()
	payload["ssn"] = "12-345-6789"
	_, result := Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "Invalid SSN format", result.Errors["ssn"])
}

func TestDates(t *testing.T) {
	assert.True(t, ValidDate("1991-04-12"))
	assert.True(t, ValidDate("2026-10-01T00:00:00Z"))
	assert.False(t, ValidDate("not-a-date"))
	assert.False(t, ValidDate("2026-13-40"))

	payload := validPayload()
	payload["dateOfBirth"] = "yesterday"
	_, result := Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "Invalid date format", result.Errors["dateOfBirth"])
}

func TestMonetaryFields(t *testing.T) {
	cases := []struct {
		value any
		ok    bool
	}{
		{float64(750), true},
		{"750", true},
		{float64(-5), false},
		{"abc", false},
		{float64(0), false},
	}
	for _, tc := range cases {
		payload := validPayload()
		payload["maxRent"] = tc.value
		_, result := Submission(payload)
		if tc.ok {
			assert.NotContains(t, result.Errors, "maxRent", "maxRent %v should pass", tc.value)
		} else {
			assert.Equal(t, "Maximum rent must be a positive number", result.Errors["maxRent"], "maxRent %v should fail", tc.value)
		}
	}

	// maxRent is optional; absence is not an error.
	payload := validPayload()
	delete(payload, "maxRent")
	_, result := Submission(payload)
	assert.NotContains(t, result.Errors, "maxRent")
}

func TestDocuments(t *testing.T) {
	payload := validPayload()
	payload["documents"] = map[string]any{
		"idDocument": "data:application/zip;base64,UEsDBA==",
	}
	_, result := Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "Invalid file type. Only PDF, DOC, DOCX, JPG, PNG allowed", result.Errors["idDocument"])

	payload["documents"] = map[string]any{"idDocument": pdfDataURI(0)}
	_, result = Submission(payload)
	assert.NotContains(t, result.Errors, "idDocument")

	// Base64 length past the 10MB decoded approximation.
	payload["documents"] = map[string]any{"idDocument": pdfDataURI(15 << 20)}
	_, result = Submission(payload)
	require.False(t, result.Valid)
	assert.Equal(t, "File size exceeds 10MB limit", result.Errors["idDocument"])
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "John", Sanitize("  <John>  "))
	assert.Equal(t, "scriptalert(1)/script", Sanitize("<script>alert(1)</script>"))

	payload := validPayload()
	payload["firstName"] = " <Jane> "
	sub, result := Submission(payload)
	require.True(t, result.Valid, "unexpected errors: %v", result.Errors)
	assert.Equal(t, "Jane", sub.FirstName)
}

func TestErrorsCollected(t *testing.T) {
	payload := validPayload()
	delete(payload, "firstName")
	payload["email"] = "bad"
	payload["ssn"] = "1"
	_, result := Submission(payload)
	require.False(t, result.Valid)
	// All violations reported together, never only the first.
	assert.Contains(t, result.Errors, "firstName")
	assert.Contains(t, result.Errors, "email")
	assert.Contains(t, result.Errors, "ssn")
}
