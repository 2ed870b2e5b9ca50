// Package validate turns an untyped wire payload into a sanitized, typed
// submission. All rules are evaluated on every call; failures are collected
// into a per-field map so the form can surface everything in one round-trip.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hartline-properties/leasegate/internal/model"
)

// MaxDocumentBytes bounds each uploaded document's decoded size.
const MaxDocumentBytes = 10 << 20 // 10 MiB

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)
	ssnRegex   = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	angleBrackets   = strings.NewReplacer("<", "", ">", "")
)

var requiredFields = []string{
	"firstName", "lastName", "email", "phone", "dateOfBirth", "ssn",
	"propertyType", "bedrooms", "moveInDate", "leaseTerm",
	"employer", "position", "employmentLength", "reference1Name", "reference1Phone",
}

// allowedDocumentTypes are the MIME types the property office accepts.
var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

// dateLayouts covers the ISO shapes the front-end date pickers emit.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Result reports the outcome of a validation pass. Errors is keyed by field
// name and always carries every violated rule, never only the first.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// Submission sanitizes and validates a raw decoded JSON object. It is a pure
// function of its input; the returned submission is only meaningful when
// Result.Valid is true.
func Submission(raw map[string]any) (*model.ApplicationSubmission, Result) {
	errs := make(map[string]string)

	sub := &model.ApplicationSubmission{
		FirstName:        Sanitize(stringField(raw, "firstName")),
		LastName:         Sanitize(stringField(raw, "lastName")),
		Email:            Sanitize(stringField(raw, "email")),
		Phone:            Sanitize(stringField(raw, "phone")),
		DateOfBirth:      strings.TrimSpace(stringField(raw, "dateOfBirth")),
		SSN:              strings.TrimSpace(stringField(raw, "ssn")),
		PropertyType:     strings.TrimSpace(stringField(raw, "propertyType")),
		Bedrooms:         strings.TrimSpace(stringField(raw, "bedrooms")),
		MoveInDate:       strings.TrimSpace(stringField(raw, "moveInDate")),
		LeaseTerm:        strings.TrimSpace(stringField(raw, "leaseTerm")),
		Pets:             strings.TrimSpace(stringField(raw, "pets")),
		Employer:         Sanitize(stringField(raw, "employer")),
		Position:         Sanitize(stringField(raw, "position")),
		EmploymentLength: strings.TrimSpace(stringField(raw, "employmentLength")),
		PreviousLandlord: strings.TrimSpace(stringField(raw, "previousLandlord")),
		LandlordPhone:    strings.TrimSpace(stringField(raw, "landlordPhone")),
		Reference1Name:   strings.TrimSpace(stringField(raw, "reference1Name")),
		Reference1Phone:  strings.TrimSpace(stringField(raw, "reference1Phone")),
		Reference2Name:   strings.TrimSpace(stringField(raw, "reference2Name")),
		Reference2Phone:  strings.TrimSpace(stringField(raw, "reference2Phone")),
	}

	sanitized := map[string]string{
		"firstName":        sub.FirstName,
		"lastName":         sub.LastName,
		"email":            sub.Email,
		"phone":            sub.Phone,
		"dateOfBirth":      sub.DateOfBirth,
		"ssn":              sub.SSN,
		"propertyType":     sub.PropertyType,
		"bedrooms":         sub.Bedrooms,
		"moveInDate":       sub.MoveInDate,
		"leaseTerm":        sub.LeaseTerm,
		"employer":         sub.Employer,
		"position":         sub.Position,
		"employmentLength": sub.EmploymentLength,
		"reference1Name":   sub.Reference1Name,
		"reference1Phone":  sub.Reference1Phone,
	}
	for _, field := range requiredFields {
		if sanitized[field] == "" {
			errs[field] = field + " is required"
		}
	}

	if sub.Email != "" && !ValidEmail(sub.Email) {
		errs["email"] = "Invalid email format"
	}
	if sub.Phone != "" && !ValidPhone(sub.Phone) {
		errs["phone"] = "Invalid phone number format"
	}
	if sub.SSN != "" && !ssnRegex.MatchString(sub.SSN) {
		errs["ssn"] = "Invalid SSN format"
	}
	if sub.DateOfBirth != "" && !ValidDate(sub.DateOfBirth) {
		errs["dateOfBirth"] = "Invalid date format"
	}
	if sub.MoveInDate != "" && !ValidDate(sub.MoveInDate) {
		errs["moveInDate"] = "Invalid date format"
	}

	sub.MaxRent = positiveNumber(raw, "maxRent", "Maximum rent must be a positive number", errs)
	sub.MonthlyIncome = positiveNumber(raw, "monthlyIncome", "Monthly income must be a positive number", errs)
	if v, err := numberField(raw, "additionalIncome"); err == nil && v != nil {
		sub.AdditionalIncome = v
	}

	if docsRaw, ok := raw["documents"].(map[string]any); ok {
		sub.Documents = model.DocumentBundle{
			IDDocument:     stringField(docsRaw, "idDocument"),
			IncomeProof:    stringField(docsRaw, "incomeProof"),
			AdditionalDocs: stringField(docsRaw, "additionalDocs"),
		}
		checkDocument(sub.Documents.IDDocument, "idDocument", errs)
		checkDocument(sub.Documents.IncomeProof, "incomeProof", errs)
		checkDocument(sub.Documents.AdditionalDocs, "additionalDocs", errs)
	}

	return sub, Result{Valid: len(errs) == 0, Errors: errs}
}

// Sanitize trims whitespace and strips angle brackets from free-text input
// before it reaches storage or any downstream rendering.
func Sanitize(s string) string {
	return strings.TrimSpace(angleBrackets.Replace(s))
}

// ValidEmail reports whether s has a local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidPhone normalizes separator characters and requires at least ten
// remaining characters in E.164-like form. The ten-character floor counts a
// leading +, so "+123456789" passes with nine digits; the website's
// client-side check applies the same rule and both sides must agree.
func ValidPhone(s string) bool {
	clean := phoneSeparators.Replace(s)
	return phoneRegex.MatchString(clean) && len(clean) >= 10
}

// ValidDate reports whether s parses as a calendar date in one of the
// accepted ISO layouts.
func ValidDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func checkDocument(dataURI, field string, errs map[string]string) {
	if dataURI == "" {
		return
	}
	uri, err := model.ParseDataURI(dataURI)
	if err != nil || !allowedDocumentTypes[uri.MIME] {
		errs[field] = "Invalid file type. Only PDF, DOC, DOCX, JPG, PNG allowed"
		return
	}
	if uri.ApproxSize() > MaxDocumentBytes {
		errs[field] = "File size exceeds 10MB limit"
	}
}

// stringField coerces a raw JSON value to a string; numbers are rendered the
// way the form would have sent them.
func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// positiveNumber parses an optional monetary field. Presence with a value
// that is not a finite positive number records an error under message.
func positiveNumber(raw map[string]any, key, message string, errs map[string]string) *float64 {
	v, err := numberField(raw, key)
	if err != nil {
		errs[key] = message
		return nil
	}
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		errs[key] = message
		return nil
	}
	return v
}

var errNotANumber = strconv.ErrSyntax

// numberField returns nil when the key is absent or blank, the parsed value
// when it is numeric, and an error otherwise.
func numberField(raw map[string]any, key string) (*float64, error) {
	switch v := raw[key].(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errNotANumber
		}
		return &parsed, nil
	default:
		return nil, errNotANumber
	}
}
