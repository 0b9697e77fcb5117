package validate

import (
	"fmt"
	"strings"

	"github.com/courtprep/backend/internal/model"
)

// Enquiry checks a contact submission and returns the first human-readable
// reason it fails. The email rule is deliberately loose: the relay replies by
// email anyway, so "contains @ and ." is all a typo check buys us.
func Enquiry(e model.Enquiry) error {
	if len(strings.TrimSpace(e.Name)) < 2 {
		return fmt.Errorf("Name is required.")
	}
	email := strings.TrimSpace(e.Email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("A valid email is required.")
	}
	if len(strings.TrimSpace(e.Message)) < 10 {
		return fmt.Errorf("Message is required.")
	}
	return nil
}

// TrimEnquiry normalizes the user-entered fields before validation/storage.
func TrimEnquiry(e model.Enquiry) model.Enquiry {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Message = strings.TrimSpace(e.Message)
	return e
}
