package admission

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/pkg/errors"
)

// csvHeader is the documented export column order.
var csvHeader = []string{
	"Application ID",
	"Student Name",
	"Father Name",
	"Phone",
	"Email",
	"Applying For Class",
	"Previous School",
	"Status",
	"Applied Date",
	"Category",
	"Marks Obtained",
	"Payment Status",
}

// ExportFilename names the downloadable artifact for the current date.
func ExportFilename(now time.Time) string {
	return "admissions_" + now.UTC().Format("2006-01-02") + ".csv"
}

// ExportCSV serializes ALL applications (not the filtered view) to w.
// Fields are quoted per RFC 4180; embedded commas, quotes and newlines
// survive a round-trip.
func (svc *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	apps, err := svc.repo.QueryAllApplications(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, app := range apps {
		if err = cw.Write(csvRow(app)); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return errors.Wrap(err, "flushing csv")
	}
	svc.notify.Success("Data exported successfully")
	return nil
}

func csvRow(app Application) []string {
	marks := app.MarksObtained
	if marks == "" {
		marks = "N/A"
	}
	payment := "Pending"
	if app.IsPaid {
		payment = "Paid"
	}
	return []string{
		app.ReferenceCode,
		app.StudentName,
		app.FatherName,
		app.FatherPhone,
		app.FatherEmail,
		app.ApplyingForClass,
		app.PreviousSchool,
		string(app.Status),
		app.AppliedAt.UTC().Format("2006-01-02"),
		string(app.Category),
		marks,
		payment,
	}
}
