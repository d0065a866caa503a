package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"oruma/models"
	"oruma/validator"
)

// DefaultMaxImportRecords bounds a single address-book import
const DefaultMaxImportRecords = 5000

// RejectedRecord is an incoming record the import refused
type RejectedRecord struct {
	Index    int    `json:"index"`
	NativeID string `json:"nativeID,omitempty"`
	Reason   string `json:"reason"`
}

// ImportResult summarizes one import run
type ImportResult struct {
	Received   int              `json:"received"`
	Inserted   int              `json:"inserted"`
	Skipped    int              `json:"skipped"`
	Duplicates int              `json:"duplicates"`
	Rejected   []RejectedRecord `json:"rejected"`
}

// ImportService turns device address-book records into stored contacts
type ImportService struct {
	repo       ContactRepository
	validator  *validator.Validator
	maxRecords int
	logger     *slog.Logger
}

// NewImportService creates a new import service. maxRecords <= 0 uses DefaultMaxImportRecords.
func NewImportService(repo ContactRepository, v *validator.Validator, maxRecords int, logger *slog.Logger) *ImportService {
	if v == nil {
		v = validator.New()
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxImportRecords
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		repo:       repo,
		validator:  v,
		maxRecords: maxRecords,
		logger:     logger,
	}
}

// Import normalizes the records and saves the ones not stored yet.
// Records already stored are left untouched and counted as skipped.
func (s *ImportService) Import(records []models.DeviceContact) (*ImportResult, error) {
	if len(records) > s.maxRecords {
		return nil, fmt.Errorf("%w: %d records, limit is %d", ErrImportTooLarge, len(records), s.maxRecords)
	}

	result := &ImportResult{
		Received: len(records),
		Rejected: []RejectedRecord{},
	}

	seen := make(map[string]bool, len(records))
	accepted := make([]models.ContactInput, 0, len(records))

	for i, record := range records {
		input := normalize(record)

		if reason := s.check(input); reason != "" {
			result.Rejected = append(result.Rejected, RejectedRecord{
				Index:    i,
				NativeID: input.NativeID,
				Reason:   reason,
			})
			continue
		}

		// First occurrence wins
		if seen[input.NativeID] {
			result.Duplicates++
			continue
		}
		seen[input.NativeID] = true
		accepted = append(accepted, input)
	}

	if len(accepted) > 0 {
		inserted, err := s.repo.BatchSave(accepted)
		if err != nil {
			return nil, fmt.Errorf("import failed: %w", err)
		}
		result.Inserted = inserted
		result.Skipped = len(accepted) - inserted
	}

	s.logger.Info("address book imported",
		"received", result.Received,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
		"rejected", len(result.Rejected),
	)

	return result, nil
}

func normalize(record models.DeviceContact) models.ContactInput {
	return models.ContactInput{
		NativeID:  strings.TrimSpace(record.NativeID),
		FirstName: strings.TrimSpace(record.FirstName),
		LastName:  strings.TrimSpace(record.LastName),
		Category:  models.ContactCategoryAll,
	}
}

// check returns why a record cannot be imported, or "" when it can
func (s *ImportService) check(input models.ContactInput) string {
	// Stored contacts accept a generated native id; imported ones must carry the device id
	if input.NativeID == "" {
		return "nativeID is required"
	}

	err := s.validator.Validate(input)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	return err.Error()
}
