package domain

import "time"

// EventType defines the type of flow event
type EventType string

const (
	// Wizard lifecycle events
	WizardStartedEvent   EventType = "WIZARD_STARTED"
	WizardStepEvent      EventType = "WIZARD_STEP_COMPLETED"
	WizardLookupEvent    EventType = "WIZARD_LOOKUP"
	WizardSubmittedEvent EventType = "WIZARD_SUBMITTED"
	WizardCancelledEvent EventType = "WIZARD_CANCELLED"

	// Operator events
	OperatorLoginEvent        EventType = "OPERATOR_LOGIN"
	OperatorLoginFailureEvent EventType = "OPERATOR_LOGIN_FAILED"
	OperatorLogoutEvent       EventType = "OPERATOR_LOGOUT"

	// Gate events
	VisitorCheckInEvent  EventType = "VISITOR_CHECKIN"
	VisitorCheckOutEvent EventType = "VISITOR_CHECKOUT"
	VisitorApprovalEvent EventType = "VISITOR_APPROVAL"
)

// FlowEvent is a structured record of something that happened in a user
// flow. Events are emitted to the log only; nothing in this service persists
// them.
type FlowEvent struct {
	EventType EventType              `json:"event_type"`
	WizardID  string                 `json:"wizard_id,omitempty"`
	UserID    int                    `json:"user_id,omitempty"`
	Step      string                 `json:"step,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewFlowEvent creates a new flow event with common fields populated
func NewFlowEvent(eventType EventType) *FlowEvent {
	return &FlowEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithWizard sets the wizard session id
func (e *FlowEvent) WithWizard(id string) *FlowEvent {
	e.WizardID = id
	return e
}

// WithUser sets the acting operator id
func (e *FlowEvent) WithUser(userID int) *FlowEvent {
	e.UserID = userID
	return e
}

// WithStep sets the wizard step name
func (e *FlowEvent) WithStep(step WizardStep) *FlowEvent {
	e.Step = step.String()
	return e
}

// WithError marks the event failed and records the cause
func (e *FlowEvent) WithError(err error) *FlowEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *FlowEvent) WithMetadata(key string, value interface{}) *FlowEvent {
	e.Metadata[key] = value
	return e
}
