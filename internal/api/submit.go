package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hartline-properties/leasegate/internal/model"
	"github.com/hartline-properties/leasegate/internal/ratelimit"
	"github.com/hartline-properties/leasegate/internal/validate"
)

// Machine-readable error codes carried in every error envelope.
const (
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInvalidJSON       = "INVALID_JSON"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type submissionData struct {
	ApplicationID       string `json:"applicationId"`
	SubmissionTimestamp string `json:"submissionTimestamp"`
	Status              string `json:"status"`
	ApplicantName       string `json:"applicantName"`
	PropertyInterest    string `json:"propertyInterest"`
}

type submissionResponse struct {
	Success bool           `json:"success"`
	Data    submissionData `json:"data"`
	Message string         `json:"message"`
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		// CORS preflight; headers are already set by the middleware.
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		s.handleSubmit(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Only POST requests are allowed", nil)
	}
}

// handleSubmit walks one submission through rate limiting, parsing,
// validation, document upload, and persistence. Only the insert can fail the
// request once validation has passed; document failures downgrade to nil
// references.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientKey := ratelimit.ClientKey(r)
	if !s.limiter.Allow(clientKey) {
		respondError(w, http.StatusTooManyRequests, CodeRateLimitExceeded, "Too many requests. Please try again later.", nil)
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON in request body", nil)
		return
	}

	sub, result := validate.Submission(raw)
	if !result.Valid {
		respondError(w, http.StatusUnprocessableEntity, CodeValidationError, "Validation failed", result.Errors)
		return
	}

	applicationID := uuid.NewString()
	submittedAt := time.Now().UTC()
	rec := model.NewRecord(applicationID, sub, submittedAt)

	// The three uploads are independent; one failing never blocks another or
	// the insert below.
	rec.IDDocumentURL = s.docs.Upload(ctx, applicationID, model.DocTypeID, sub.Documents.IDDocument)
	rec.IncomeProofURL = s.docs.Upload(ctx, applicationID, model.DocTypeIncome, sub.Documents.IncomeProof)
	rec.AdditionalDocsURL = s.docs.Upload(ctx, applicationID, model.DocTypeAdditional, sub.Documents.AdditionalDocs)

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("insert application failed",
			zap.String("applicationId", applicationID),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, CodeDatabaseError, "Failed to save application", nil)
		return
	}

	s.log.Info("application submitted",
		zap.String("applicationId", applicationID),
		zap.String("propertyType", sub.PropertyType),
	)
	respondJSON(w, http.StatusCreated, submissionResponse{
		Success: true,
		Data: submissionData{
			ApplicationID:       applicationID,
			SubmissionTimestamp: submittedAt.Format(time.RFC3339),
			Status:              string(model.StatusSubmitted),
			ApplicantName:       sub.ApplicantName(),
			PropertyInterest:    sub.PropertyType,
		},
		Message: "Application submitted successfully",
	})
}

func respondError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	respondJSON(w, status, errorResponse{
		Success: false,
		Error:   errorBody{Code: code, Message: message, Details: details},
	})
}
