package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func filledForm() *FormState {
	visitorID := 42
	photoURL := "https://img/visitor.jpg"
	photoLocal := "file:///tmp/capture.jpg"
	proofImage := "front.jpg"
	proofBack := "back.jpg"
	purpose := "Meeting"
	branch := "B1"
	dept := "D2"
	emp := "E3"

	f := NewFormState("w1")
	f.Step = StepHost
	f.Mobile = "9876543210"
	f.VisitorID = &visitorID
	f.PhotoURL = &photoURL
	f.PhotoLocal = &photoLocal
	f.Name = "J Doe"
	f.Address = "12 Palm Street"
	f.Company = "Acme"
	f.IDProofType = "Passport"
	f.IDProofID = "1"
	f.IDProofNumber = "P1234567"
	f.IDProofImage = &proofImage
	f.IDProofBackImage = &proofBack
	f.Purpose = &purpose
	f.BranchID = &branch
	f.DepartmentID = &dept
	f.EmployeeID = &emp
	f.GatePass = &GatePass{ID: "gp1", CardNumber: 7}
	return f
}

func TestFormStateClearVisitorData(t *testing.T) {
	f := filledForm()
	f.ClearVisitorData()

	if f.Mobile != "9876543210" {
		t.Errorf("ClearVisitorData must leave mobile untouched, got %q", f.Mobile)
	}
	if f.VisitorID != nil || f.PhotoURL != nil || f.PhotoLocal != nil {
		t.Error("lookup-derived fields should be cleared")
	}
	if f.Name != "" || f.Address != "" || f.Company != "" {
		t.Error("profile fields should be cleared")
	}
	if f.IDProofType != "" || f.IDProofID != "" || f.IDProofNumber != "" ||
		f.IDProofImage != nil || f.IDProofBackImage != nil {
		t.Error("ID proof fields should be cleared")
	}
	if f.Purpose != nil || f.BranchID != nil || f.DepartmentID != nil || f.EmployeeID != nil {
		t.Error("purpose and host fields should be cleared")
	}
	if f.GatePass != nil {
		t.Error("gate pass should be cleared")
	}
}

func TestFormStateResetIdempotent(t *testing.T) {
	f := filledForm()
	f.Reset()
	once := *f
	f.Reset()

	if !reflect.DeepEqual(once, *f) {
		t.Errorf("reset twice differs from reset once:\nonce:  %+v\ntwice: %+v", once, *f)
	}
	if f.Step != StepIdentify {
		t.Errorf("reset should return to first step, got %v", f.Step)
	}
	if f.Mobile != "" {
		t.Errorf("reset should clear mobile, got %q", f.Mobile)
	}
}

func TestFormStateHasPhoto(t *testing.T) {
	f := NewFormState("w1")
	if f.HasPhoto() {
		t.Error("empty form should not report a photo")
	}

	empty := ""
	f.PhotoLocal = &empty
	if f.HasPhoto() {
		t.Error("empty photo reference should not count")
	}

	local := "file:///tmp/capture.jpg"
	f.PhotoLocal = &local
	if !f.HasPhoto() {
		t.Error("freshly captured photo should count")
	}

	f.PhotoLocal = nil
	url := "https://img/visitor.jpg"
	f.PhotoURL = &url
	if !f.HasPhoto() {
		t.Error("looked-up photo should count")
	}
}

func TestGatePassRoundTrip(t *testing.T) {
	pass := &GatePass{
		ID:             "gp-9",
		VisitorID:      "42",
		Name:           "J Doe",
		CardNumber:     118,
		Contact:        "9876543210",
		VisitorCompany: "Acme",
		HostCompany:    "Conrad",
		ToMeet:         "R Patel",
		Purpose:        "Meeting",
		Date:           "2026-08-31",
		InTime:         "10:45 AM",
		OutTime:        "06:00 PM",
		PhotoPath:      "/media/p/42.jpg",
		QRPath:         "/media/qr/gp-9.png",
		LogoPath:       "/media/logo.png",
		WatermarkPath:  "/media/wm.png",
	}

	f := NewFormState("w1")
	f.GatePass = pass

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back FormState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(pass, back.GatePass) {
		t.Errorf("gate pass lost fields in round trip:\nwant %+v\ngot  %+v", pass, back.GatePass)
	}
}

func TestWithinValidity(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"inside window", "2026-08-30", "2026-09-01", true},
		{"first day counts from midnight", "2026-08-31", "2026-08-31", true},
		{"expired yesterday", "2026-08-28", "2026-08-30", false},
		{"starts tomorrow", "2026-09-01", "2026-09-03", false},
		{"timestamp form accepted", "2026-08-31T00:00:00", "2026-08-31T00:00:00", true},
		{"missing from", "", "2026-09-01", false},
		{"missing to", "2026-08-30", "", false},
		{"garbage date", "soon", "2026-09-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinValidity(tt.from, tt.to, now); got != tt.want {
				t.Errorf("WithinValidity(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestVisitorStatusLabel(t *testing.T) {
	tests := []struct {
		status VisitorStatus
		want   string
	}{
		{StatusInside, "Currently Inside"},
		{StatusOutside, "Not Checked in"},
		{StatusDeparted, "Already Out"},
		{VisitorStatus("Weird"), "Weird"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestMaskContact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "******3210"},
		{"123", "--"},
		{"", "--"},
	}
	for _, tt := range tests {
		if got := MaskContact(tt.in); got != tt.want {
			t.Errorf("MaskContact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskIDNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCD1234XYZ", "**** ***4 XYZ"},
		{"12 34", "1234"},
		{"", "-"},
	}
	for _, tt := range tests {
		if got := MaskIDNumber(tt.in); got != tt.want {
			t.Errorf("MaskIDNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
