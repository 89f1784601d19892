package domain

import (
	"strings"
	"time"
)

// User represents the authenticated operator as reported by the VMS backend.
type User struct {
	UserID   int
	UserName string
	UserRole string
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Username string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User        *User
	AccessToken string
	SessionID   string
	ExpiresIn   int64
}

// Session represents an operator session
type Session struct {
	ID        string
	UserID    int
	UserRole  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// WizardStep is one of the ordered registration wizard steps.
type WizardStep int

const (
	StepIdentify WizardStep = iota + 1
	StepCapture
	StepProfile
	StepPurpose
	StepHost
	StepGatePass
)

// String returns the step name used in API payloads and error maps.
func (s WizardStep) String() string {
	switch s {
	case StepIdentify:
		return "identify"
	case StepCapture:
		return "capture"
	case StepProfile:
		return "profile"
	case StepPurpose:
		return "purpose"
	case StepHost:
		return "host"
	case StepGatePass:
		return "gatepass"
	default:
		return "unknown"
	}
}

// FormState holds every field collected across the registration wizard.
// One instance exists per wizard session; it is created empty on Start,
// mutated by each step, and deleted on cancel or completion. Writes are not
// validated here; invalid states are allowed transiently and checked only at
// step-advance boundaries.
type FormState struct {
	ID   string     `json:"id"`
	Step WizardStep `json:"step"`

	Mobile    string `json:"mobile"`
	VisitorID *int   `json:"visitorId,omitempty"`

	PhotoURL   *string `json:"photoUrl,omitempty"`
	PhotoLocal *string `json:"photoLocal,omitempty"`

	Name    string `json:"name"`
	Address string `json:"address"`
	Company string `json:"company"`

	IDProofType      string  `json:"idProofType"`
	IDProofID        string  `json:"idProofId"`
	IDProofNumber    string  `json:"idProofNumber"`
	IDProofImage     *string `json:"idProofImage,omitempty"`
	IDProofBackImage *string `json:"idProofBackImage,omitempty"`

	Purpose *string `json:"purpose,omitempty"`

	BranchID     *string `json:"branchId,omitempty"`
	DepartmentID *string `json:"departmentId,omitempty"`
	EmployeeID   *string `json:"employeeId,omitempty"`

	GatePass *GatePass `json:"gatePassData,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewFormState returns an empty form state at the first step.
func NewFormState(id string) *FormState {
	now := time.Now().UTC()
	return &FormState{
		ID:        id,
		Step:      StepIdentify,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset clears every collected field and returns the wizard to the first
// step. Calling it twice yields the same empty state as calling it once.
func (f *FormState) Reset() {
	f.Step = StepIdentify
	f.Mobile = ""
	f.ClearVisitorData()
}

// ClearVisitorData clears the profile fields pre-filled by a lookup while
// leaving Mobile untouched. Used when a mobile lookup finds no match, so a
// stale profile from a previous lookup never leaks into a new registration.
func (f *FormState) ClearVisitorData() {
	f.VisitorID = nil
	f.Name = ""
	f.Address = ""
	f.Company = ""
	f.IDProofType = ""
	f.IDProofID = ""
	f.IDProofNumber = ""
	f.IDProofImage = nil
	f.IDProofBackImage = nil
	f.PhotoURL = nil
	f.PhotoLocal = nil
	f.Purpose = nil
	f.BranchID = nil
	f.DepartmentID = nil
	f.EmployeeID = nil
	f.GatePass = nil
}

// HasPhoto reports whether a photo exists, freshly captured or carried over
// from a matched profile.
func (f *FormState) HasPhoto() bool {
	return (f.PhotoLocal != nil && *f.PhotoLocal != "") ||
		(f.PhotoURL != nil && *f.PhotoURL != "")
}

// Finished reports whether a gate pass has already been issued for this
// session. A finished wizard cannot be re-entered.
func (f *FormState) Finished() bool {
	return f.Step == StepGatePass && f.GatePass != nil
}

// GatePass is the visitor credential issued by the backend after a
// successful registration. Stored verbatim; the gate-pass screen must be able
// to read back exactly what the backend returned.
type GatePass struct {
	ID             string `json:"id"`
	VisitorID      string `json:"visitorId"`
	Name           string `json:"name"`
	CardNumber     int    `json:"cardNumber"`
	Contact        string `json:"contact"`
	VisitorCompany string `json:"visitorCompany"`
	HostCompany    string `json:"hostCompany"`
	ToMeet         string `json:"toMeet"`
	Purpose        string `json:"purpose"`
	Date           string `json:"date"`
	InTime         string `json:"inTime"`
	OutTime        string `json:"outTime"`
	PhotoPath      string `json:"photoPath"`
	QRPath         string `json:"qrPath"`
	LogoPath       string `json:"logoPath"`
	WatermarkPath  string `json:"watermarkPath"`
}

// VisitorProfile is the projection returned by the visitor-by-mobile lookup.
// Its fields are treated as editable defaults, never as authoritative values.
type VisitorProfile struct {
	VisitorID int    `json:"visitorId"`
	Name      string `json:"name"`
	Company   string `json:"visitorCompany"`
	Address   string `json:"address"`
	ImageURL  string `json:"imageUrl"`
	IDProof   string `json:"idProof"`
	IDProofNo string `json:"idProofNo"`
	IDProofID string `json:"idProofId"`
	Purpose   string `json:"purpose"`
}

// LookupOutcome names the result of a visitor-by-mobile lookup. Failure to
// reach the backend is deliberately folded into LookupNotFoundOrUnavailable
// so registration is never blocked by a lookup outage.
type LookupOutcome string

const (
	LookupFound                 LookupOutcome = "found"
	LookupNotFoundOrUnavailable LookupOutcome = "not_found_or_unavailable"
)

// VisitorStatus is the backend-derived in/out state of a visitor.
type VisitorStatus string

const (
	StatusInside   VisitorStatus = "Inside"
	StatusOutside  VisitorStatus = "Outside"
	StatusDeparted VisitorStatus = "Departed"
)

// Label returns the operator-facing description of a status.
func (s VisitorStatus) Label() string {
	switch s {
	case StatusInside:
		return "Currently Inside"
	case StatusOutside:
		return "Not Checked in"
	case StatusDeparted:
		return "Already Out"
	default:
		return string(s)
	}
}

// Visitor is the read-only projection fetched for the detail and scanner
// screens. Mutated only by re-fetch or by a confirmed action.
type Visitor struct {
	VisitorID            int           `json:"VisitorId"`
	VisitorType          string        `json:"VisitorType"`
	VisitorName          string        `json:"VisitorName"`
	ImageURL             string        `json:"ImageUrl"`
	VisitorContact       string        `json:"VisitorContact"`
	VisitorCompany       string        `json:"VisitorCompany"`
	VisitorAddress       string        `json:"VisitorAddress"`
	IDProofType          string        `json:"IdProofType"`
	IDProofNumber        string        `json:"IdProofNumber"`
	VisiteeName          string        `json:"VisiteeName"`
	VisiteeID            int           `json:"VisiteeId"`
	GatepassStatus       string        `json:"GatepassStatus"`
	GatepassValidity     string        `json:"GatepassValidity"`
	VisitorStatus        VisitorStatus `json:"VisitorStatus"`
	IsEmployeeCheckout   bool          `json:"IsEmployeeCheckout"`
	EmployeeCheckoutTime string        `json:"EmployeeCheckoutTime"`
	VehicleType          string        `json:"VehicleType"`
	VehicleNumber        string        `json:"VehicleNumber"`
	Material             string        `json:"Material"`
	InOutStatus          string        `json:"InOutStatus"`
	FromDate             string        `json:"FromDate"`
	ToDate               string        `json:"ToDate"`
}

// Approved reports whether the gate pass on this visitor has been approved.
func (v *Visitor) Approved() bool {
	return v.GatepassStatus == "Approve"
}

// ActionState is the reconciliation state of a list row while an
// approve/reject action is in flight.
type ActionState string

const (
	ActionNone      ActionState = ""
	ActionPending   ActionState = "pending"
	ActionConfirmed ActionState = "confirmed"
	ActionFailed    ActionState = "failed"
)

// VisitorListItem is one row of the dashboard visitor list.
type VisitorListItem struct {
	VisitorID         int         `json:"VisitorId"`
	VisitorName       string      `json:"VisitorName"`
	ContactNumber     string      `json:"ContactNumber"`
	FromDate          string      `json:"FromDate"`
	InTime            *string     `json:"InTime"`
	OutTime           *string     `json:"OutTime"`
	Purpose           *string     `json:"Purpose"`
	AuthorityApproval *string     `json:"AuthorityApproval"`
	EmployeeApproval  *string     `json:"EmployeeApproval"`
	ActionState       ActionState `json:"ActionState,omitempty"`
}

// ActionOutcome is the result of a visitor action (check-in/out,
// approve/reject). Confirmed=false means the caller must re-fetch
// authoritative state instead of trusting any local patch.
type ActionOutcome struct {
	Confirmed bool
	Message   string
}

// Option is one entry of an upstream dropdown catalog.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegistrationPayload is the self-registration submission in backend field
// names. Assembled once, at the final wizard step, from the accumulated
// FormState.
type RegistrationPayload struct {
	LoginUserID   int
	Contact       string
	Name          string
	Company       string
	Address       string
	Purpose       string
	ToMeet        string
	BranchID      string
	DepartmentID  string
	EmployeeID    string
	IDProof       string
	IDProofNumber string
	Photo         string
	DocumentImage string
}

// WithinValidity reports whether now falls inside the pass validity window,
// from the start of FromDate to the end of ToDate.
func WithinValidity(fromDate, toDate string, now time.Time) bool {
	if fromDate == "" || toDate == "" {
		return false
	}
	from, err := parseDateOnly(fromDate)
	if err != nil {
		return false
	}
	to, err := parseDateOnly(toDate)
	if err != nil {
		return false
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	return !now.Before(start) && !now.After(end)
}

func parseDateOnly(s string) (time.Time, error) {
	// Backend dates arrive either as bare dates or full timestamps.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	return time.Parse("2006-01-02", s)
}

// MaskContact hides all but the last four digits of a contact number.
func MaskContact(num string) string {
	if len(num) < 4 {
		return "--"
	}
	return strings.Repeat("*", len(num)-4) + num[len(num)-4:]
}

// MaskIDNumber hides all but the last four characters of an ID-proof number,
// regrouped in blocks of four for readability.
func MaskIDNumber(id string) string {
	clean := strings.Join(strings.Fields(id), "")
	if clean == "" {
		return "-"
	}
	if len(clean) <= 4 {
		return clean
	}
	masked := strings.Repeat("*", len(clean)-4) + clean[len(clean)-4:]
	var b strings.Builder
	for i, r := range masked {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
