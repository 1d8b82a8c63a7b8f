package admission

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

// Step indexes the five ordered intake steps.
type Step int

const (
	StepStudent Step = iota + 1
	StepAcademic
	StepParent
	StepContact
	StepDocuments
)

var stepTitles = map[Step]string{
	StepStudent:   "Student Information",
	StepAcademic:  "Academic Information",
	StepParent:    "Parent Information",
	StepContact:   "Contact Information",
	StepDocuments: "Documents",
}

func (s Step) Valid() bool { return s >= StepStudent && s <= StepDocuments }

func (s Step) Title() string { return stepTitles[s] }

var errInvalidStep = errors.New("invalid intake step")

// requiredFields gates forward navigation per step. Backward navigation is
// never gated. Order matters: the first unmet field is the one reported.
var requiredFields = map[Step][]struct {
	field string
	get   func(*NewApplication) string
}{
	StepStudent: {
		{"student_name", func(na *NewApplication) string { return na.StudentName }},
		{"date_of_birth", func(na *NewApplication) string { return na.DateOfBirth }},
		{"gender", func(na *NewApplication) string { return na.Gender }},
	},
	StepAcademic: {
		{"applying_for_class", func(na *NewApplication) string { return na.ApplyingForClass }},
		{"previous_school", func(na *NewApplication) string { return na.PreviousSchool }},
	},
	StepParent: {
		{"father_name", func(na *NewApplication) string { return na.FatherName }},
		{"father_phone", func(na *NewApplication) string { return na.FatherPhone }},
		{"mother_name", func(na *NewApplication) string { return na.MotherName }},
	},
	StepContact: {
		{"address", func(na *NewApplication) string { return na.Address }},
		{"city", func(na *NewApplication) string { return na.City }},
		{"pincode", func(na *NewApplication) string { return na.Pincode }},
	},
}

// ValidateStep checks the required fields of a single step.
func ValidateStep(step Step, draft *NewApplication) error {
	if !step.Valid() {
		return core.NewValidationError(errInvalidStep)
	}
	draft.clean()

	if step == StepDocuments {
		return validateDocuments(draft.Documents, draft.DeclarationAccepted)
	}
	for _, req := range requiredFields[step] {
		if req.get(draft) == "" {
			return core.NewValidationError(
				errors.Errorf("please fill all required fields in %s", step.Title()),
				core.FieldError{Field: req.field, Error: "this field is required"},
			)
		}
	}
	return nil
}

func validateDocuments(docs []DocumentFile, declared bool) error {
	attached := make(map[DocumentType]DocumentFile, len(docs))
	for _, doc := range docs {
		if doc.Size > MaxDocumentSize {
			return core.NewValidationError(
				errors.Errorf("%s exceeds the 2MB limit", doc.Type),
				core.FieldError{Field: string(doc.Type), Error: "file size should be less than 2MB"},
			)
		}
		attached[doc.Type] = doc
	}
	for _, mandatory := range MandatoryDocuments {
		if _, ok := attached[mandatory]; !ok {
			return core.NewValidationError(
				errors.Errorf("%s is required", mandatory),
				core.FieldError{Field: string(mandatory), Error: "this document is required"},
			)
		}
	}
	if !declared {
		return core.NewValidationError(
			errors.New("the declaration must be acknowledged"),
			core.FieldError{Field: "declaration_accepted", Error: "please acknowledge the declaration"},
		)
	}
	return nil
}

// Collector accumulates a candidate application across the five intake steps
// and hands exactly one finished draft to the registry on submission.
// It performs no partial writes: the registry is only touched by Submit.
type Collector struct {
	svc     *Service
	mailSvc core.EmailService
	notify  core.Notifier
	conf    *core.Config
}

func NewCollector(svc *Service, mailSvc core.EmailService, notify core.Notifier, conf *core.Config) *Collector {
	return &Collector{svc: svc, mailSvc: mailSvc, notify: notify, conf: conf}
}

// Advance validates the current step and returns the next one. The draft is
// never mutated beyond whitespace cleaning; on failure the caller keeps the
// draft and the step unchanged.
func (c *Collector) Advance(step Step, draft *NewApplication) (Step, error) {
	if err := ValidateStep(step, draft); err != nil {
		return step, err
	}
	if step < StepDocuments {
		return step + 1, nil
	}
	return StepDocuments, nil
}

// Submit is only reachable from the documents step with the declaration
// acknowledged. On success the draft becomes a pending Application and a
// confirmation email goes out to the father's address (best effort). On
// failure the caller keeps the draft for retry.
func (c *Collector) Submit(ctx context.Context, draft *NewApplication) (Application, error) {
	if err := ValidateStep(StepDocuments, draft); err != nil {
		return Application{}, err
	}

	app, err := c.svc.Create(ctx, *draft)
	if err != nil {
		return Application{}, err
	}

	c.notify.Success("Application submitted successfully! We will contact you soon.")
	c.sendConfirmation(app)
	return app, nil
}

func (c *Collector) sendConfirmation(app Application) {
	if app.FatherEmail == "" {
		return
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: app.FatherName, Address: app.FatherEmail}},
		Subject:      fmt.Sprintf("Application %s received", app.ReferenceCode),
		TemplateName: "application_submitted",
		TemplateData: map[string]interface{}{
			"Name":          app.FatherName,
			"StudentName":   app.StudentName,
			"ReferenceCode": app.ReferenceCode,
			"Class":         app.ApplyingForClass,
		},
	}
	c.mailSvc.SendMessages(msg)
}
