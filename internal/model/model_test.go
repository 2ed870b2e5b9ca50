package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSNLastFour(t *testing.T) {
	assert.Equal(t, "6789", SSNLastFour("123-45-6789"))
	assert.Equal(t, "6789", SSNLastFour("123456789"))
	assert.Equal(t, "6789", SSNLastFour("123 45 6789"))
	assert.Equal(t, "123", SSNLastFour("123"))
	assert.Equal(t, "", SSNLastFour(""))
}

func TestParseDataURI(t *testing.T) {
	uri, err := ParseDataURI("data:application/pdf;base64,JVBERi0=")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", uri.MIME)
	assert.Equal(t, "JVBERi0=", uri.Payload)

	data, err := uri.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), data)

	for _, bad := range []string{"", "JVBERi0=", "data:,", "data:;base64,abc", "data:application/pdf;base64,"} {
		_, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, "input %q", bad)
	}
}

func TestApproxSize(t *testing.T) {
	uri := DataURI{MIME: "application/pdf", Payload: "JVBERi0="}
	// 8 base64 chars approximate to 6 decoded bytes.
	assert.Equal(t, int64(6), uri.ApproxSize())
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rent := 750.0
	sub := &ApplicationSubmission{
		FirstName:    "Jane",
		LastName:     "Doe",
		SSN:          "123-45-6789",
		PropertyType: "apartment",
		MaxRent:      &rent,
	}
	rec := NewRecord("app-1", sub, now)

	assert.Equal(t, "app-1", rec.ID)
	assert.Equal(t, StatusSubmitted, rec.Status)
	assert.Equal(t, now, rec.SubmittedAt)
	assert.Equal(t, now, rec.CreatedAt)
	// Only the last four digits of the SSN survive into the record.
	assert.Equal(t, "6789", rec.SSNLastFour)
	assert.Nil(t, rec.IDDocumentURL)
	assert.Nil(t, rec.IncomeProofURL)
	assert.Nil(t, rec.AdditionalDocsURL)
}

func TestApplicantName(t *testing.T) {
	sub := &ApplicationSubmission{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", sub.ApplicantName())
}
