package services

import (
	"strings"

	"github.com/you/visitorsvc/domain"
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateStep runs the gate predicate for one wizard step against the
// accumulated form. It returns nil on pass or a field-keyed error map on
// failure; it never touches the network.
func ValidateStep(step domain.WizardStep, f *domain.FormState) *domain.ValidationError {
	fields := map[string]string{}

	switch step {
	case domain.StepIdentify:
		if len(f.Mobile) != 10 || !isDigits(f.Mobile) {
			fields["mobile"] = "Please enter a valid 10-digit number"
		}
	case domain.StepCapture:
		if !f.HasPhoto() {
			fields["photo"] = "Visitor photo is required"
		}
	case domain.StepProfile:
		if strings.TrimSpace(f.Name) == "" {
			fields["name"] = "Name is required"
		}
		if strings.TrimSpace(f.Company) == "" {
			fields["company"] = "Company is required"
		}
		if strings.TrimSpace(f.Address) == "" {
			fields["address"] = "Address is required"
		}
		if f.IDProofID == "" {
			fields["idProofId"] = "Select ID proof type"
		}
		if f.IDProofNumber == "" && (f.IDProofImage == nil || *f.IDProofImage == "") {
			fields["idProofNumber"] = "ID proof number or document image required"
		}
	case domain.StepPurpose:
		if f.Purpose == nil || strings.TrimSpace(*f.Purpose) == "" {
			fields["purpose"] = "Purpose is required"
		}
	case domain.StepHost:
		if f.BranchID == nil || *f.BranchID == "" {
			fields["branch"] = "Location required"
		}
		if f.EmployeeID == nil || *f.EmployeeID == "" {
			fields["employee"] = "Host selection required"
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Step: step, Fields: fields}
	}
	return nil
}

// validateThrough checks every gating step up to and including last,
// returning the first failure.
func validateThrough(f *domain.FormState, last domain.WizardStep) *domain.ValidationError {
	for step := domain.StepIdentify; step <= last; step++ {
		if verr := ValidateStep(step, f); verr != nil {
			return verr
		}
	}
	return nil
}
