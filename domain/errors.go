package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInsufficientRole   = errors.New("insufficient role permissions")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Wizard errors
var (
	ErrWizardNotFound    = errors.New("wizard session not found")
	ErrWizardFinished    = errors.New("wizard already issued a gate pass")
	ErrGatePassNotIssued = errors.New("gate pass not issued yet")
	ErrEmployeeNotInHost = errors.New("selected employee does not belong to the selected branch and department")
)

// Lookup errors
var (
	ErrVisitorNotFound = errors.New("visitor not found")
)

// ValidationError carries the field-keyed error map produced by a step
// validator. It blocks navigation but never reaches the network.
type ValidationError struct {
	Step   WizardStep
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("step %s validation failed: %s", e.Step, strings.Join(keys, ", "))
}

// UpstreamError is a rejection reported by the VMS backend. Message is the
// operator-facing text taken from the response body when present.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// AsUpstreamError unwraps err into an UpstreamError if it is one.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
