package services

import (
	"fmt"

	"github.com/courtprep/backend/internal/model"
)

// Write-validation outcomes stay precise in here so they are testable; the
// HTTP layer turns them into silent redirects.
var (
	ErrEmptyTitle           = fmt.Errorf("case title is empty: %w", model.ErrValidation)
	ErrEmptySummary         = fmt.Errorf("event summary is empty: %w", model.ErrValidation)
	ErrConfirmationMismatch = fmt.Errorf("delete confirmation mismatch: %w", model.ErrValidation)
)
