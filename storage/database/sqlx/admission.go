package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/admission"
)

type applicationRepository struct {
	db *sqlx.DB
}

var _ admission.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *sqlx.DB) *applicationRepository {
	return &applicationRepository{db: db}
}

// dbApplication mirrors the application table.
type dbApplication struct {
	ID               string         `db:"id"`
	ReferenceCode    string         `db:"reference_code"`
	StudentName      string         `db:"student_name"`
	DateOfBirth      string         `db:"date_of_birth"`
	Gender           string         `db:"gender"`
	Nationality      string         `db:"nationality"`
	Religion         string         `db:"religion"`
	Category         string         `db:"category"`
	ApplyingForClass string         `db:"applying_for_class"`
	PreviousSchool   string         `db:"previous_school"`
	PreviousClass    string         `db:"previous_class"`
	MarksObtained    string         `db:"marks_obtained"`
	Board            string         `db:"board"`
	FatherName       string         `db:"father_name"`
	FatherOccupation string         `db:"father_occupation"`
	FatherPhone      string         `db:"father_phone"`
	FatherEmail      string         `db:"father_email"`
	MotherName       string         `db:"mother_name"`
	MotherOccupation string         `db:"mother_occupation"`
	MotherPhone      string         `db:"mother_phone"`
	MotherEmail      string         `db:"mother_email"`
	Address          string         `db:"address"`
	City             string         `db:"city"`
	Pincode          string         `db:"pincode"`
	EmergencyContact string         `db:"emergency_contact"`
	Status           string         `db:"status"`
	Priority         string         `db:"priority"`
	IsPaid           bool           `db:"is_paid"`
	Documents        pq.StringArray `db:"documents"`
	Notes            string         `db:"notes"`
	AppliedAt        time.Time      `db:"applied_at"`
	InteractionAt    sql.NullTime   `db:"interaction_at"`
}

func toRow(app admission.Application) dbApplication {
	row := dbApplication{
		ID:               app.ID,
		ReferenceCode:    app.ReferenceCode,
		StudentName:      app.StudentName,
		DateOfBirth:      app.DateOfBirth,
		Gender:           app.Gender,
		Nationality:      app.Nationality,
		Religion:         app.Religion,
		Category:         string(app.Category),
		ApplyingForClass: app.ApplyingForClass,
		PreviousSchool:   app.PreviousSchool,
		PreviousClass:    app.PreviousClass,
		MarksObtained:    app.MarksObtained,
		Board:            app.Board,
		FatherName:       app.FatherName,
		FatherOccupation: app.FatherOccupation,
		FatherPhone:      app.FatherPhone,
		FatherEmail:      app.FatherEmail,
		MotherName:       app.MotherName,
		MotherOccupation: app.MotherOccupation,
		MotherPhone:      app.MotherPhone,
		MotherEmail:      app.MotherEmail,
		Address:          app.Address,
		City:             app.City,
		Pincode:          app.Pincode,
		EmergencyContact: app.EmergencyContact,
		Status:           string(app.Status),
		Priority:         string(app.Priority),
		IsPaid:           app.IsPaid,
		Documents:        app.Documents,
		Notes:            app.Notes,
		AppliedAt:        app.AppliedAt.UTC(),
	}
	if !app.InteractionAt.IsZero() {
		row.InteractionAt = sql.NullTime{Time: app.InteractionAt.UTC(), Valid: true}
	}
	return row
}

func fromRow(row dbApplication) admission.Application {
	app := admission.Application{
		ID:               row.ID,
		ReferenceCode:    row.ReferenceCode,
		StudentName:      row.StudentName,
		DateOfBirth:      row.DateOfBirth,
		Gender:           row.Gender,
		Nationality:      row.Nationality,
		Religion:         row.Religion,
		Category:         admission.Category(row.Category),
		ApplyingForClass: row.ApplyingForClass,
		PreviousSchool:   row.PreviousSchool,
		PreviousClass:    row.PreviousClass,
		MarksObtained:    row.MarksObtained,
		Board:            row.Board,
		FatherName:       row.FatherName,
		FatherOccupation: row.FatherOccupation,
		FatherPhone:      row.FatherPhone,
		FatherEmail:      row.FatherEmail,
		MotherName:       row.MotherName,
		MotherOccupation: row.MotherOccupation,
		MotherPhone:      row.MotherPhone,
		MotherEmail:      row.MotherEmail,
		Address:          row.Address,
		City:             row.City,
		Pincode:          row.Pincode,
		EmergencyContact: row.EmergencyContact,
		Status:           admission.Status(row.Status),
		Priority:         admission.Priority(row.Priority),
		IsPaid:           row.IsPaid,
		Documents:        row.Documents,
		Notes:            row.Notes,
		AppliedAt:        row.AppliedAt,
	}
	if row.InteractionAt.Valid {
		app.InteractionAt = row.InteractionAt.Time
	}
	return app
}

// trapErr maps "no rows" to admission.ErrNotFound; any other driver error is
// a failed store round-trip.
func trapErr(err error, op string) error {
	if err == sql.ErrNoRows {
		return admission.ErrNotFound
	}
	return core.NewStoreUnavailableError(op, err)
}

const applicationColumns = `id, reference_code, student_name, date_of_birth, gender, nationality, religion,
category, applying_for_class, previous_school, previous_class, marks_obtained, board,
father_name, father_occupation, father_phone, father_email,
mother_name, mother_occupation, mother_phone, mother_email,
address, city, pincode, emergency_contact,
status, priority, is_paid, documents, notes, applied_at, interaction_at`

func (repo *applicationRepository) CreateApplication(ctx context.Context, app admission.Application) (admission.Application, error) {
	app.ID = uuid.New().String()
	row := toRow(app)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO application (`+applicationColumns+`)
		VALUES (:id, :reference_code, :student_name, :date_of_birth, :gender, :nationality, :religion,
		        :category, :applying_for_class, :previous_school, :previous_class, :marks_obtained, :board,
		        :father_name, :father_occupation, :father_phone, :father_email,
		        :mother_name, :mother_occupation, :mother_phone, :mother_email,
		        :address, :city, :pincode, :emergency_contact,
		        :status, :priority, :is_paid, :documents, :notes, :applied_at, :interaction_at)`,
		row)
	if err != nil {
		return admission.Application{}, trapErr(err, "inserting application")
	}
	return app, nil
}

func (repo *applicationRepository) GetApplicationByID(ctx context.Context, id string) (admission.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return admission.Application{}, admission.ErrNotFound
	}
	var row dbApplication
	err := repo.db.GetContext(ctx, &row, `SELECT `+applicationColumns+` FROM application WHERE id = $1`, id)
	if err != nil {
		return admission.Application{}, trapErr(err, "getting application")
	}
	return fromRow(row), nil
}

func (repo *applicationRepository) GetApplicationByReference(ctx context.Context, ref string) (admission.Application, error) {
	var row dbApplication
	err := repo.db.GetContext(ctx, &row, `SELECT `+applicationColumns+` FROM application WHERE reference_code = $1`, ref)
	if err != nil {
		return admission.Application{}, trapErr(err, "getting application by reference")
	}
	return fromRow(row), nil
}

func (repo *applicationRepository) QueryAllApplications(ctx context.Context) ([]admission.Application, error) {
	var rows []dbApplication
	err := repo.db.SelectContext(ctx, &rows, `SELECT `+applicationColumns+` FROM application ORDER BY applied_at DESC, reference_code DESC`)
	if err != nil {
		return nil, trapErr(err, "querying applications")
	}
	apps := make([]admission.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, fromRow(row))
	}
	return apps, nil
}

func (repo *applicationRepository) FilterApplications(ctx context.Context, filter admission.QueryFilter) ([]admission.Application, error) {
	filter.Clean()

	query := `SELECT ` + applicationColumns + ` FROM application WHERE 1=1`
	var clauses string
	var args []interface{}
	next := func(val interface{}) string {
		args = append(args, val)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		clauses += ` AND (student_name ILIKE ` + p +
			` OR reference_code ILIKE ` + p +
			` OR father_name ILIKE ` + p +
			` OR father_phone ILIKE ` + p + `)`
	}
	if filter.Status != "" {
		clauses += ` AND status = ` + next(filter.Status)
	}
	if filter.Class != "" {
		clauses += ` AND applying_for_class = ` + next(filter.Class)
	}
	if filter.Priority != "" {
		clauses += ` AND priority = ` + next(filter.Priority)
	}

	var rows []dbApplication
	err := repo.db.SelectContext(ctx, &rows, query+clauses+` ORDER BY applied_at DESC, reference_code DESC`, args...)
	if err != nil {
		return nil, trapErr(err, "filtering applications")
	}
	apps := make([]admission.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, fromRow(row))
	}
	return apps, nil
}

func (repo *applicationRepository) UpdateApplication(ctx context.Context, app admission.Application) (admission.Application, error) {
	row := toRow(app)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE application
		SET student_name       = :student_name,
		    date_of_birth      = :date_of_birth,
		    gender             = :gender,
		    nationality        = :nationality,
		    religion           = :religion,
		    category           = :category,
		    applying_for_class = :applying_for_class,
		    previous_school    = :previous_school,
		    previous_class     = :previous_class,
		    marks_obtained     = :marks_obtained,
		    board              = :board,
		    father_name        = :father_name,
		    father_occupation  = :father_occupation,
		    father_phone       = :father_phone,
		    father_email       = :father_email,
		    mother_name        = :mother_name,
		    mother_occupation  = :mother_occupation,
		    mother_phone       = :mother_phone,
		    mother_email       = :mother_email,
		    address            = :address,
		    city               = :city,
		    pincode            = :pincode,
		    emergency_contact  = :emergency_contact,
		    status             = :status,
		    priority           = :priority,
		    is_paid            = :is_paid,
		    documents          = :documents,
		    notes              = :notes,
		    interaction_at     = :interaction_at
		WHERE id = :id`,
		row)
	if err != nil {
		return admission.Application{}, trapErr(err, "updating application")
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return admission.Application{}, admission.ErrNotFound
	}
	return app, nil
}

func (repo *applicationRepository) DeleteApplication(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return admission.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM application WHERE id = $1`, id)
	if err != nil {
		return trapErr(err, "deleting application")
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return admission.ErrNotFound
	}
	return nil
}

func (repo *applicationRepository) NextReferenceSequence(ctx context.Context, year int) (int, error) {
	var seq int
	err := repo.db.GetContext(ctx, &seq, `
		INSERT INTO reference_sequence (cycle_year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (cycle_year) DO UPDATE SET last_seq = reference_sequence.last_seq + 1
		RETURNING last_seq`,
		year)
	if err != nil {
		return 0, trapErr(err, "allocating reference sequence")
	}
	return seq, nil
}
