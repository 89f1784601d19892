package services

import (
	log "github.com/sirupsen/logrus"

	"github.com/you/visitorsvc/domain"
)

// emit writes a flow event to the structured log. Events are observational
// only; no state hangs off them.
func emit(e *domain.FlowEvent) {
	fields := log.Fields{
		"event":   e.EventType,
		"success": e.Success,
	}
	if e.WizardID != "" {
		fields["wizard_id"] = e.WizardID
	}
	if e.UserID != 0 {
		fields["user_id"] = e.UserID
	}
	if e.Step != "" {
		fields["step"] = e.Step
	}
	for k, v := range e.Metadata {
		fields[k] = v
	}

	entry := log.WithFields(fields)
	if e.Success {
		entry.Info(string(e.EventType))
		return
	}
	entry.WithField("error", e.ErrorMsg).Warn(string(e.EventType))
}
