package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hartline-properties/leasegate/internal/model"
)

// ErrNotFound is returned when no application matches the requested id.
var ErrNotFound = errors.New("application not found")

// ApplicationRepository wraps all SQL used by the intake service.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository constructs a repository.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create persists a submitted application as one atomic insert. The record is
// never mutated by this service afterwards; status transitions belong to the
// admin system.
func (r *ApplicationRepository) Create(ctx context.Context, rec *model.ApplicationRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rental_applications (
			id, first_name, last_name, email, phone, date_of_birth, ssn_last_four,
			property_type, bedrooms, max_rent, move_in_date, lease_term, pets,
			employer, position, monthly_income, employment_length, additional_income,
			previous_landlord, landlord_phone,
			reference1_name, reference1_phone, reference2_name, reference2_phone,
			id_document_url, income_proof_url, additional_docs_url,
			status, submitted_at, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,
			$8,$9,$10,$11,$12,$13,
			$14,$15,$16,$17,$18,
			$19,$20,
			$21,$22,$23,$24,
			$25,$26,$27,
			$28,$29,$30,$31
		)
	`,
		rec.ID, rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.DateOfBirth, rec.SSNLastFour,
		rec.PropertyType, rec.Bedrooms, rec.MaxRent, rec.MoveInDate, rec.LeaseTerm, nullable(rec.Pets),
		rec.Employer, rec.Position, rec.MonthlyIncome, rec.EmploymentLength, rec.AdditionalIncome,
		nullable(rec.PreviousLandlord), nullable(rec.LandlordPhone),
		rec.Reference1Name, rec.Reference1Phone, nullable(rec.Reference2Name), nullable(rec.Reference2Phone),
		rec.IDDocumentURL, rec.IncomeProofURL, rec.AdditionalDocsURL,
		rec.Status, rec.SubmittedAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// Get returns an application by id. Intake itself only writes; the operations
// CLI's get command reads records back through this path.
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*model.ApplicationRecord, error) {
	var rec model.ApplicationRecord
	var pets, prevLandlord, landlordPhone, ref2Name, ref2Phone *string
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, ssn_last_four,
			property_type, bedrooms, max_rent, move_in_date, lease_term, pets,
			employer, position, monthly_income, employment_length, additional_income,
			previous_landlord, landlord_phone,
			reference1_name, reference1_phone, reference2_name, reference2_phone,
			id_document_url, income_proof_url, additional_docs_url,
			status, submitted_at, created_at, updated_at
		FROM rental_applications WHERE id=$1
	`, id)
	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone, &rec.DateOfBirth, &rec.SSNLastFour,
		&rec.PropertyType, &rec.Bedrooms, &rec.MaxRent, &rec.MoveInDate, &rec.LeaseTerm, &pets,
		&rec.Employer, &rec.Position, &rec.MonthlyIncome, &rec.EmploymentLength, &rec.AdditionalIncome,
		&prevLandlord, &landlordPhone,
		&rec.Reference1Name, &rec.Reference1Phone, &ref2Name, &ref2Phone,
		&rec.IDDocumentURL, &rec.IncomeProofURL, &rec.AdditionalDocsURL,
		&rec.Status, &rec.SubmittedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select application: %w", err)
	}
	rec.Pets = deref(pets)
	rec.PreviousLandlord = deref(prevLandlord)
	rec.LandlordPhone = deref(landlordPhone)
	rec.Reference2Name = deref(ref2Name)
	rec.Reference2Phone = deref(ref2Phone)
	return &rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
