// Package model contains the submission and record types shared across packages.
package model

import (
	"strings"
	"time"
)

// ApplicationStatus describes the record lifecycle. Intake only ever writes
// StatusSubmitted; the remaining values mirror the transitions the admin
// system applies to the same rows, so the full enum lives here with the
// schema.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusApproved  ApplicationStatus = "approved"
	StatusDeclined  ApplicationStatus = "declined"
)

// Document type tags used for storage paths and the documents bundle.
const (
	DocTypeID         = "id-document"
	DocTypeIncome     = "income-proof"
	DocTypeAdditional = "additional-docs"
)

// DocumentBundle carries the optional data-URI encoded uploads from the form.
type DocumentBundle struct {
	IDDocument     string `json:"idDocument,omitempty"`
	IncomeProof    string `json:"incomeProof,omitempty"`
	AdditionalDocs string `json:"additionalDocs,omitempty"`
}

// ApplicationSubmission is the typed, sanitized payload. It only exists on the
// far side of the validator; raw wire data never crosses into this struct
// without every field having been checked.
type ApplicationSubmission struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	SSN         string

	PropertyType string
	Bedrooms     string
	MaxRent      *float64
	MoveInDate   string
	LeaseTerm    string
	Pets         string

	Employer         string
	Position         string
	MonthlyIncome    *float64
	EmploymentLength string
	AdditionalIncome *float64

	PreviousLandlord string
	LandlordPhone    string
	Reference1Name   string
	Reference1Phone  string
	Reference2Name   string
	Reference2Phone  string

	Documents DocumentBundle
}

// ApplicantName returns the applicant's display name for the response body.
func (s *ApplicationSubmission) ApplicantName() string {
	return s.FirstName + " " + s.LastName
}

// ApplicationRecord is the persisted row. The full SSN is discarded after
// validation; only its last four digits survive.
type ApplicationRecord struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	SSNLastFour string `json:"ssnLastFour"`

	PropertyType string   `json:"propertyType"`
	Bedrooms     string   `json:"bedrooms"`
	MaxRent      *float64 `json:"maxRent,omitempty"`
	MoveInDate   string   `json:"moveInDate"`
	LeaseTerm    string   `json:"leaseTerm"`
	Pets         string   `json:"pets,omitempty"`

	Employer         string   `json:"employer"`
	Position         string   `json:"position"`
	MonthlyIncome    *float64 `json:"monthlyIncome,omitempty"`
	EmploymentLength string   `json:"employmentLength"`
	AdditionalIncome *float64 `json:"additionalIncome,omitempty"`

	PreviousLandlord string `json:"previousLandlord,omitempty"`
	LandlordPhone    string `json:"landlordPhone,omitempty"`
	Reference1Name   string `json:"reference1Name"`
	Reference1Phone  string `json:"reference1Phone"`
	Reference2Name   string `json:"reference2Name,omitempty"`
	Reference2Phone  string `json:"reference2Phone,omitempty"`

	IDDocumentURL     *string `json:"idDocumentUrl,omitempty"`
	IncomeProofURL    *string `json:"incomeProofUrl,omitempty"`
	AdditionalDocsURL *string `json:"additionalDocsUrl,omitempty"`

	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewRecord builds the persisted record from a validated submission. Document
// URLs start nil and are filled in by the upload step.
func NewRecord(id string, sub *ApplicationSubmission, submittedAt time.Time) *ApplicationRecord {
	return &ApplicationRecord{
		ID:               id,
		FirstName:        sub.FirstName,
		LastName:         sub.LastName,
		Email:            sub.Email,
		Phone:            sub.Phone,
		DateOfBirth:      sub.DateOfBirth,
		SSNLastFour:      SSNLastFour(sub.SSN),
		PropertyType:     sub.PropertyType,
		Bedrooms:         sub.Bedrooms,
		MaxRent:          sub.MaxRent,
		MoveInDate:       sub.MoveInDate,
		LeaseTerm:        sub.LeaseTerm,
		Pets:             sub.Pets,
		Employer:         sub.Employer,
		Position:         sub.Position,
		MonthlyIncome:    sub.MonthlyIncome,
		EmploymentLength: sub.EmploymentLength,
		AdditionalIncome: sub.AdditionalIncome,
		PreviousLandlord: sub.PreviousLandlord,
		LandlordPhone:    sub.LandlordPhone,
		Reference1Name:   sub.Reference1Name,
		Reference1Phone:  sub.Reference1Phone,
		Reference2Name:   sub.Reference2Name,
		Reference2Phone:  sub.Reference2Phone,
		Status:           StatusSubmitted,
		SubmittedAt:      submittedAt,
		CreatedAt:        submittedAt,
		UpdatedAt:        submittedAt,
	}
}

// SSNLastFour extracts the trailing four digits of an SSN regardless of how
// the caller formatted it ("123-45-6789" and "123456789" both yield "6789").
func SSNLastFour(ssn string) string {
	var digits strings.Builder
	for _, r := range ssn {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) <= 4 {
		return d
	}
	return d[len(d)-4:]
}
