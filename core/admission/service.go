package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

var (
	// errors
	ErrNotFound            = errors.New("application not found")
	ErrReferenceExists     = errors.New("an application with this reference code already exists")
	errEmptyNote           = errors.New("note text is required")
	errDeleteNotConfirmed  = errors.New("deletion must be confirmed")
	errUnknownStatus       = errors.New("unknown application status")
)

// notesTimeFormat prefixes every note entry. UTC.
const notesTimeFormat = "2006-01-02 15:04:05"

type (
	Repository interface {
		CreateApplication(ctx context.Context, app Application) (Application, error)
		GetApplicationByID(ctx context.Context, id string) (Application, error)
		GetApplicationByReference(ctx context.Context, ref string) (Application, error)
		QueryAllApplications(ctx context.Context) ([]Application, error)
		// FilterApplications applies AND on the available QueryFilter fields;
		// QueryFilter.Search does a case-insensitive substring match on one of
		// StudentName, ReferenceCode, FatherName or FatherPhone.
		FilterApplications(ctx context.Context, filter QueryFilter) ([]Application, error)
		// UpdateApplication overwrites the stored record (last write wins).
		UpdateApplication(ctx context.Context, app Application) (Application, error)
		DeleteApplication(ctx context.Context, id string) error
		// NextReferenceSequence returns the next free sequence for the cycle year.
		NextReferenceSequence(ctx context.Context, year int) (int, error)
	}

	// Service is the application registry and review engine. It owns the
	// collection; every derived view (filtering, stats, export) is a pure
	// projection recomputed from the store on demand.
	Service struct {
		repo   Repository
		log    core.Logger
		notify core.Notifier
		refs   ReferenceGenerator
	}
)

func NewService(repo Repository, log core.Logger, notify core.Notifier, conf *core.Config) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		notify: notify,
		refs: ReferenceGenerator{
			Prefix: conf.Admission.ReferencePrefix,
			Year:   conf.Admission.CycleYear,
		},
	}
}

// Create validates the draft, assigns a reference code and stores the
// application as pending. AppliedAt is stamped once and never changes.
func (svc *Service) Create(ctx context.Context, na NewApplication) (Application, error) {
	if err := na.Validate(); err != nil {
		return Application{}, err
	}

	seq, err := svc.repo.NextReferenceSequence(ctx, svc.refs.Year)
	if err != nil {
		return Application{}, errors.Wrap(err, "allocating reference sequence")
	}

	category := na.Category
	if category == "" {
		category = CategoryGeneral
	}

	app := Application{
		ReferenceCode:    svc.refs.Format(seq),
		StudentName:      na.StudentName,
		DateOfBirth:      na.DateOfBirth,
		Gender:           na.Gender,
		Nationality:      na.Nationality,
		Religion:         na.Religion,
		Category:         category,
		ApplyingForClass: na.ApplyingForClass,
		PreviousSchool:   na.PreviousSchool,
		PreviousClass:    na.PreviousClass,
		MarksObtained:    na.MarksObtained,
		Board:            na.Board,
		FatherName:       na.FatherName,
		FatherOccupation: na.FatherOccupation,
		FatherPhone:      na.FatherPhone,
		FatherEmail:      na.FatherEmail,
		MotherName:       na.MotherName,
		MotherOccupation: na.MotherOccupation,
		MotherPhone:      na.MotherPhone,
		MotherEmail:      na.MotherEmail,
		Address:          na.Address,
		City:             na.City,
		Pincode:          na.Pincode,
		EmergencyContact: na.EmergencyContact,
		Status:           StatusPending,
		Priority:         PriorityMedium,
		IsPaid:           false,
		Documents:        na.DocumentLabels(),
		AppliedAt:        time.Now().UTC(),
	}
	return svc.repo.CreateApplication(ctx, app)
}

func (svc *Service) Get(ctx context.Context, id string) (Application, error) {
	return svc.repo.GetApplicationByID(ctx, id)
}

func (svc *Service) GetByReference(ctx context.Context, ref string) (Application, error) {
	return svc.repo.GetApplicationByReference(ctx, core.CleanString(ref))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Application, error) {
	return svc.repo.QueryAllApplications(ctx)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Application, error) {
	filter.Clean()
	return svc.repo.FilterApplications(ctx, filter)
}

// UpdateStatus overwrites the status and stamps the interaction date.
// All pairs are accepted; leaving a terminal status is logged for audit.
func (svc *Service) UpdateStatus(ctx context.Context, id string, status Status) (Application, error) {
	if !status.Valid() {
		return Application{}, core.NewValidationError(errUnknownStatus,
			core.FieldError{Field: "status", Error: errUnknownStatus.Error()})
	}

	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.Status.Terminal() && app.Status != status {
		svc.log.Warn(fmt.Sprintf("application %s leaving terminal status %s for %s",
			app.ReferenceCode, app.Status, status))
	}

	app.Status = status
	app.InteractionAt = time.Now().UTC()
	app, err = svc.repo.UpdateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.notify.Success(fmt.Sprintf("Status updated to %s", status))
	return app, nil
}

// SetPayment toggles the payment flag. No gating: any status, any time.
func (svc *Service) SetPayment(ctx context.Context, id string, paid bool) (Application, error) {
	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	app.IsPaid = paid
	app, err = svc.repo.UpdateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.notify.Success("Payment status updated")
	return app, nil
}

// AppendNote appends "<timestamp>: <text>" to the notes log. Prior entries
// are preserved verbatim; the log only grows.
func (svc *Service) AppendNote(ctx context.Context, id, text string) (Application, error) {
	text = core.CleanString(text)
	if text == "" {
		return Application{}, core.NewValidationError(errEmptyNote,
			core.FieldError{Field: "text", Error: errEmptyNote.Error()})
	}

	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	entry := time.Now().UTC().Format(notesTimeFormat) + ": " + text
	if app.Notes == "" {
		app.Notes = entry
	} else {
		app.Notes += "\n" + entry
	}
	app, err = svc.repo.UpdateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.notify.Success("Note added")
	return app, nil
}

// Edit merges the patch into the record. Last write wins: no version check
// is performed, concurrent reviewer edits silently overwrite each other.
func (svc *Service) Edit(ctx context.Context, id string, patch ApplicationPatch) (Application, error) {
	if err := patch.Validate(); err != nil {
		return Application{}, err
	}

	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	app, err = svc.repo.UpdateApplication(ctx, patch.Apply(app))
	if err != nil {
		return Application{}, err
	}
	svc.notify.Success("Application updated successfully")
	return app, nil
}

// Delete hard-deletes the application. The caller must pass an explicit
// confirmation; there is no soft delete and no undo.
func (svc *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return core.NewValidationError(errDeleteNotConfirmed,
			core.FieldError{Field: "confirm", Error: errDeleteNotConfirmed.Error()})
	}
	if err := svc.repo.DeleteApplication(ctx, id); err != nil {
		return err
	}
	svc.notify.Success("Application deleted")
	return nil
}

// Stats recomputes the dashboard counters from the full collection.
func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	apps, err := svc.repo.QueryAllApplications(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:    len(apps),
		ByStatus: make(map[Status]int, len(Statuses)),
	}
	for _, status := range Statuses {
		stats.ByStatus[status] = 0
	}

	today := time.Now().UTC().Format("2006-01-02")
	for _, app := range apps {
		stats.ByStatus[app.Status]++
		if app.AppliedAt.UTC().Format("2006-01-02") == today {
			stats.Today++
		}
	}
	if stats.Total > 0 {
		stats.ApprovalRate = float64(stats.ByStatus[StatusApproved]) / float64(stats.Total)
	}
	return stats, nil
}
