package admission

import (
	"strings"
	"time"

	"github.com/littleheartschool/backend/core"
)

// Statuses an application moves through. Any status may transition to any
// other; transitions out of a terminal status are logged for audit review.
type Status string

const (
	StatusPending    Status = "pending"
	StatusReviewed   Status = "reviewed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusWaitlisted Status = "waitlisted"
)

var Statuses = []Status{StatusPending, StatusReviewed, StatusApproved, StatusRejected, StatusWaitlisted}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether s normally ends the review workflow.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Priority is an informational urgency tag; it gates nothing.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Category is the admission category of the candidate.
type Category string

const (
	CategoryGeneral Category = "General"
	CategoryOBC     Category = "OBC"
	CategorySC      Category = "SC"
	CategoryST      Category = "ST"
	CategoryEWS     Category = "EWS"
)

var Categories = []Category{CategoryGeneral, CategoryOBC, CategorySC, CategoryST, CategoryEWS}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Document types collected by the intake form.
type DocumentType string

const (
	DocBirthCertificate  DocumentType = "Birth Certificate"
	DocPreviousMarksheet DocumentType = "Previous Marksheet"
	DocAadhaarCard       DocumentType = "Aadhaar Card"
	DocPhotograph        DocumentType = "Photograph"
)

var MandatoryDocuments = []DocumentType{DocBirthCertificate, DocPreviousMarksheet, DocPhotograph}

// MaxDocumentSize is the per-file upload cap.
const MaxDocumentSize = 2 << 20 // 2 MiB

// DocumentFile references a file already hosted by the asset host.
// The binary itself never passes through this core.
type DocumentFile struct {
	Type     DocumentType `json:"type"`
	Filename string       `json:"filename"`
	Size     int64        `json:"size"`
	URL      string       `json:"url"`
	AssetID  string       `json:"asset_id"`
}

// Application is one candidate's admission submission and its review state.
type Application struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"reference_code"` // e.g. LHS-2024-001; immutable

	// subject
	StudentName      string   `json:"student_name"`
	DateOfBirth      string   `json:"date_of_birth"` // YYYY-MM-DD
	Gender           string   `json:"gender"`
	Nationality      string   `json:"nationality,omitempty"`
	Religion         string   `json:"religion,omitempty"`
	Category         Category `json:"category"`
	ApplyingForClass string   `json:"applying_for_class"`
	PreviousSchool   string   `json:"previous_school"`
	PreviousClass    string   `json:"previous_class,omitempty"`
	MarksObtained    string   `json:"marks_obtained,omitempty"`
	Board            string   `json:"board,omitempty"`

	// guardians
	FatherName       string `json:"father_name"`
	FatherOccupation string `json:"father_occupation,omitempty"`
	FatherPhone      string `json:"father_phone"`
	FatherEmail      string `json:"father_email,omitempty"`
	MotherName       string `json:"mother_name"`
	MotherOccupation string `json:"mother_occupation,omitempty"`
	MotherPhone      string `json:"mother_phone,omitempty"`
	MotherEmail      string `json:"mother_email,omitempty"`

	// contact
	Address          string `json:"address"`
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	// process
	Status        Status    `json:"status"`
	Priority      Priority  `json:"priority"`
	IsPaid        bool      `json:"is_paid"`
	Documents     []string  `json:"documents"` // document-type labels
	Notes         string    `json:"notes"`     // append-only, newline-delimited log
	AppliedAt     time.Time `json:"applied_at"`      // UTC; immutable
	InteractionAt time.Time `json:"interaction_at"`  // UTC; stamped on every status change; zero until reviewed
}

// NewApplication is the draft accumulated by the intake Collector.
type NewApplication struct {
	// step 1: student information
	StudentName string   `json:"student_name" validate:"required"`
	DateOfBirth string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string   `json:"gender" validate:"required,oneof=Male Female Other"`
	Nationality string   `json:"nationality" validate:"omitempty"`
	Religion    string   `json:"religion" validate:"omitempty"`
	Category    Category `json:"category" validate:"omitempty,category"`

	// step 2: academic information
	ApplyingForClass string `json:"applying_for_class" validate:"required"`
	PreviousSchool   string `json:"previous_school" validate:"required"`
	PreviousClass    string `json:"previous_class" validate:"omitempty"`
	MarksObtained    string `json:"marks_obtained" validate:"omitempty"`
	Board            string `json:"board" validate:"omitempty"`

	// step 3: parent information
	FatherName       string `json:"father_name" validate:"required"`
	FatherOccupation string `json:"father_occupation" validate:"omitempty"`
	FatherPhone      string `json:"father_phone" validate:"required,phone"`
	FatherEmail      string `json:"father_email" validate:"omitempty,email"`
	MotherName       string `json:"mother_name" validate:"required"`
	MotherOccupation string `json:"mother_occupation" validate:"omitempty"`
	MotherPhone      string `json:"mother_phone" validate:"omitempty,phone"`
	MotherEmail      string `json:"mother_email" validate:"omitempty,email"`

	// step 4: contact information
	Address          string `json:"address" validate:"required"`
	City             string `json:"city" validate:"required"`
	Pincode          string `json:"pincode" validate:"required,pincode"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,phone"`

	// step 5: documents + declaration
	Documents           []DocumentFile `json:"documents"`
	DeclarationAccepted bool           `json:"declaration_accepted"`
}

// Validate checks the complete draft (all five steps) before creation.
func (na *NewApplication) Validate() error {
	na.clean()
	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	return validateDocuments(na.Documents, na.DeclarationAccepted)
}

func (na *NewApplication) clean() {
	na.StudentName = core.CleanString(na.StudentName)
	na.Gender = core.CleanString(na.Gender)
	na.Nationality = core.CleanString(na.Nationality)
	na.Religion = core.CleanString(na.Religion)
	na.ApplyingForClass = core.CleanString(na.ApplyingForClass)
	na.PreviousSchool = core.CleanString(na.PreviousSchool)
	na.PreviousClass = core.CleanString(na.PreviousClass)
	na.MarksObtained = core.CleanString(na.MarksObtained)
	na.Board = core.CleanString(na.Board)
	na.FatherName = core.CleanString(na.FatherName)
	na.FatherOccupation = core.CleanString(na.FatherOccupation)
	na.FatherPhone = core.CleanString(na.FatherPhone)
	na.FatherEmail = core.CleanString(na.FatherEmail, true /* lower */)
	na.MotherName = core.CleanString(na.MotherName)
	na.MotherOccupation = core.CleanString(na.MotherOccupation)
	na.MotherPhone = core.CleanString(na.MotherPhone)
	na.MotherEmail = core.CleanString(na.MotherEmail, true /* lower */)
	na.Address = core.CleanString(na.Address)
	na.City = core.CleanString(na.City)
	na.Pincode = core.CleanString(na.Pincode)
	na.EmergencyContact = core.CleanString(na.EmergencyContact)
}

// DocumentLabels returns the attached document-type labels in attachment order.
func (na *NewApplication) DocumentLabels() []string {
	labels := make([]string, 0, len(na.Documents))
	for _, doc := range na.Documents {
		labels = append(labels, string(doc.Type))
	}
	return labels
}

// ApplicationPatch defines what a reviewer may change on an existing
// Application. Reference code, applied date and status have no field here:
// immutability is structural, not a runtime filter. Status moves through
// Service.UpdateStatus only.
type ApplicationPatch struct {
	StudentName      string   `json:"student_name" validate:"omitempty"`
	DateOfBirth      string   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Nationality      string   `json:"nationality" validate:"omitempty"`
	Religion         string   `json:"religion" validate:"omitempty"`
	Category         Category `json:"category" validate:"omitempty,category"`
	ApplyingForClass string   `json:"applying_for_class" validate:"omitempty"`
	PreviousSchool   string   `json:"previous_school" validate:"omitempty"`
	PreviousClass    string   `json:"previous_class" validate:"omitempty"`
	MarksObtained    string   `json:"marks_obtained" validate:"omitempty"`
	Board            string   `json:"board" validate:"omitempty"`
	FatherName       string   `json:"father_name" validate:"omitempty"`
	FatherOccupation string   `json:"father_occupation" validate:"omitempty"`
	FatherPhone      string   `json:"father_phone" validate:"omitempty,phone"`
	FatherEmail      string   `json:"father_email" validate:"omitempty,email"`
	MotherName       string   `json:"mother_name" validate:"omitempty"`
	MotherOccupation string   `json:"mother_occupation" validate:"omitempty"`
	MotherPhone      string   `json:"mother_phone" validate:"omitempty,phone"`
	MotherEmail      string   `json:"mother_email" validate:"omitempty,email"`
	Address          string   `json:"address" validate:"omitempty"`
	City             string   `json:"city" validate:"omitempty"`
	Pincode          string   `json:"pincode" validate:"omitempty,pincode"`
	EmergencyContact string   `json:"emergency_contact" validate:"omitempty,phone"`
	Priority         Priority `json:"priority" validate:"omitempty,priority"`
	Documents        []string `json:"documents"`
}

func (p *ApplicationPatch) Validate() error {
	p.StudentName = core.CleanString(p.StudentName)
	p.FatherName = core.CleanString(p.FatherName)
	p.MotherName = core.CleanString(p.MotherName)
	p.FatherEmail = core.CleanString(p.FatherEmail, true /* lower */)
	p.MotherEmail = core.CleanString(p.MotherEmail, true /* lower */)
	return core.Validate.Struct(p)
}

// Apply merges the set fields of the patch into app (shallow, per field).
func (p *ApplicationPatch) Apply(app Application) Application {
	setString := func(dst *string, val string) {
		if val != "" {
			*dst = val
		}
	}
	setString(&app.StudentName, p.StudentName)
	setString(&app.DateOfBirth, p.DateOfBirth)
	setString(&app.Gender, p.Gender)
	setString(&app.Nationality, p.Nationality)
	setString(&app.Religion, p.Religion)
	setString(&app.ApplyingForClass, p.ApplyingForClass)
	setString(&app.PreviousSchool, p.PreviousSchool)
	setString(&app.PreviousClass, p.PreviousClass)
	setString(&app.MarksObtained, p.MarksObtained)
	setString(&app.Board, p.Board)
	setString(&app.FatherName, p.FatherName)
	setString(&app.FatherOccupation, p.FatherOccupation)
	setString(&app.FatherPhone, p.FatherPhone)
	setString(&app.FatherEmail, p.FatherEmail)
	setString(&app.MotherName, p.MotherName)
	setString(&app.MotherOccupation, p.MotherOccupation)
	setString(&app.MotherPhone, p.MotherPhone)
	setString(&app.MotherEmail, p.MotherEmail)
	setString(&app.Address, p.Address)
	setString(&app.City, p.City)
	setString(&app.Pincode, p.Pincode)
	setString(&app.EmergencyContact, p.EmergencyContact)
	if p.Category != "" {
		app.Category = p.Category
	}
	if p.Priority != "" {
		app.Priority = p.Priority
	}
	if p.Documents != nil {
		app.Documents = p.Documents
	}
	return app
}

// QueryFilter narrows the application list. All predicates are ANDed;
// "All" (or empty) matches everything on that axis.
type QueryFilter struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Class    string `query:"class"`
	Priority string `query:"priority"`
}

const FilterAll = "All"

func (qf *QueryFilter) IsEmpty() bool {
	qf.Clean()
	return qf.Search == "" && qf.Status == "" && qf.Class == "" && qf.Priority == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Status == FilterAll {
		qf.Status = ""
	}
	if qf.Class == FilterAll {
		qf.Class = ""
	}
	if qf.Priority == FilterAll {
		qf.Priority = ""
	}
}

// Match reports whether app satisfies the filter. The store-side filters
// mirror these semantics; the in-memory repository delegates here.
func (qf QueryFilter) Match(app Application) bool {
	(&qf).Clean()
	if qf.Search != "" {
		kw := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(app.StudentName), kw) ||
			strings.Contains(strings.ToLower(app.ReferenceCode), kw) ||
			strings.Contains(strings.ToLower(app.FatherName), kw) ||
			strings.Contains(strings.ToLower(app.FatherPhone), kw)) {
			return false
		}
	}
	if qf.Status != "" && app.Status != Status(qf.Status) {
		return false
	}
	if qf.Class != "" && app.ApplyingForClass != qf.Class {
		return false
	}
	if qf.Priority != "" && app.Priority != Priority(qf.Priority) {
		return false
	}
	return true
}

// Stats is the derived dashboard view, recomputed on demand.
type Stats struct {
	Total        int            `json:"total"`
	ByStatus     map[Status]int `json:"by_status"`
	Today        int            `json:"today"` // applied today, UTC calendar date
	ApprovalRate float64        `json:"approval_rate"`
}
