package admission

import (
	"context"
	"testing"

	"github.com/littleheartschool/backend/core"
	dummymail "github.com/littleheartschool/backend/services/email/dummy"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("expected *core.ValidationError; got %T (%v)", err, err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestValidateStep(t *testing.T) {
	full := validTestDraft("Rohan Kumar", "5")

	tests := []struct {
		name      string
		step      Step
		mutate    func(*NewApplication)
		wantField string
	}{
		{name: "invalid step low", step: 0},
		{name: "invalid step high", step: 6},
		{name: "step 1 ok", step: StepStudent},
		{name: "step 1 missing name", step: StepStudent,
			mutate: func(na *NewApplication) { na.StudentName = "" }, wantField: "student_name"},
		{name: "step 1 whitespace name", step: StepStudent,
			mutate: func(na *NewApplication) { na.StudentName = "   " }, wantField: "student_name"},
		{name: "step 1 missing dob", step: StepStudent,
			mutate: func(na *NewApplication) { na.DateOfBirth = "" }, wantField: "date_of_birth"},
		{name: "step 2 ok", step: StepAcademic},
		{name: "step 2 missing class", step: StepAcademic,
			mutate: func(na *NewApplication) { na.ApplyingForClass = "" }, wantField: "applying_for_class"},
		{name: "step 3 missing father phone", step: StepParent,
			mutate: func(na *NewApplication) { na.FatherPhone = "" }, wantField: "father_phone"},
		{name: "step 4 missing pincode", step: StepContact,
			mutate: func(na *NewApplication) { na.Pincode = "" }, wantField: "pincode"},
		{name: "step 5 ok", step: StepDocuments},
		{name: "step 5 oversized file", step: StepDocuments,
			mutate:    func(na *NewApplication) { na.Documents[0].Size = MaxDocumentSize + 1 },
			wantField: "Birth Certificate"},
		{name: "step 5 missing mandatory doc", step: StepDocuments,
			mutate:    func(na *NewApplication) { na.Documents = na.Documents[1:] },
			wantField: "Birth Certificate"},
		{name: "step 5 declaration not accepted", step: StepDocuments,
			mutate:    func(na *NewApplication) { na.DeclarationAccepted = false },
			wantField: "declaration_accepted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := full
			draft.Documents = append([]DocumentFile(nil), full.Documents...)
			if tt.mutate != nil {
				tt.mutate(&draft)
			}

			err := ValidateStep(tt.step, &draft)
			if !tt.step.Valid() || tt.wantField != "" {
				if err == nil {
					t.Fatal("ValidateStep() expected error; got nil")
				}
				if tt.wantField != "" {
					if flds := fieldErrors(t, err); flds[tt.wantField] == "" {
						t.Errorf("expected field error on %q; got %v", tt.wantField, flds)
					}
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateStep() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStep_sizeCapMessage(t *testing.T) {
	draft := validTestDraft("Rohan Kumar", "5")
	draft.Documents[0].Size = MaxDocumentSize + 1

	err := ValidateStep(StepDocuments, &draft)
	flds := fieldErrors(t, err)
	if got := flds["Birth Certificate"]; got != "file size should be less than 2MB" {
		t.Errorf("message = %q; want the 2MB cap message", got)
	}

	// exactly at the cap passes
	draft.Documents[0].Size = MaxDocumentSize
	if err = ValidateStep(StepDocuments, &draft); err != nil {
		t.Errorf("ValidateStep() at cap: %v", err)
	}
}

func TestCollector_Advance(t *testing.T) {
	svc, _, logger := newTestService(t)
	conf := &core.Config{AppName: "LHS Backend"}
	collector := NewCollector(svc, dummymail.NewService(conf), core.LogNotifier{Log: logger}, conf)

	draft := validTestDraft("Rohan Kumar", "5")

	// walk the happy path forward
	step := StepStudent
	for step < StepDocuments {
		next, err := collector.Advance(step, &draft)
		if err != nil {
			t.Fatalf("Advance(%d) failed: %v", step, err)
		}
		if next != step+1 {
			t.Fatalf("Advance(%d) = %d; want %d", step, next, step+1)
		}
		step = next
	}

	// the documents step does not advance past itself
	next, err := collector.Advance(StepDocuments, &draft)
	if err != nil {
		t.Fatalf("Advance(documents) failed: %v", err)
	}
	if next != StepDocuments {
		t.Errorf("Advance(documents) = %d; want %d", next, StepDocuments)
	}

	// failure keeps the caller on the same step
	draft.StudentName = ""
	next, err = collector.Advance(StepStudent, &draft)
	if err == nil {
		t.Fatal("Advance() expected error; got nil")
	}
	if next != StepStudent {
		t.Errorf("Advance() on failure = %d; want %d", next, StepStudent)
	}
}

func TestCollector_Submit(t *testing.T) {
	svc, repo, logger := newTestService(t)
	conf := &core.Config{AppName: "LHS Backend"}
	mailSvc := dummymail.NewService(conf)
	collector := NewCollector(svc, mailSvc, core.LogNotifier{Log: logger}, conf)
	ctx := context.Background()

	t.Run("rejects incomplete draft", func(t *testing.T) {
		draft := validTestDraft("Rohan Kumar", "5")
		draft.DeclarationAccepted = false
		if _, err := collector.Submit(ctx, &draft); err == nil {
			t.Fatal("Submit() expected error; got nil")
		}
		if len(repo.apps) != 0 {
			t.Errorf("registry touched on failed submit: %d records", len(repo.apps))
		}
	})

	t.Run("stores pending application", func(t *testing.T) {
		draft := validTestDraft("Rohan Kumar", "5")
		app, err := collector.Submit(ctx, &draft)
		if err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		if app.Status != StatusPending {
			t.Errorf("Status = %s; want pending", app.Status)
		}
		if app.ReferenceCode != "LHS-2024-001" {
			t.Errorf("ReferenceCode = %s; want LHS-2024-001", app.ReferenceCode)
		}
		if app.Priority != PriorityMedium {
			t.Errorf("Priority = %s; want medium", app.Priority)
		}
		if app.Category != CategoryGeneral {
			t.Errorf("Category = %s; want General", app.Category)
		}
		if app.AppliedAt.IsZero() {
			t.Error("AppliedAt not stamped")
		}
		if !app.InteractionAt.IsZero() {
			t.Error("InteractionAt stamped before review")
		}
		want := []string{"Birth Certificate", "Previous Marksheet", "Photograph"}
		if len(app.Documents) != len(want) {
			t.Fatalf("Documents = %v; want %v", app.Documents, want)
		}
		for i, label := range want {
			if app.Documents[i] != label {
				t.Errorf("Documents[%d] = %s; want %s", i, app.Documents[i], label)
			}
		}
	})

	t.Run("sequence advances per submission", func(t *testing.T) {
		draft := validTestDraft("Priya Sharma", "3")
		app, err := collector.Submit(ctx, &draft)
		if err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		if app.ReferenceCode != "LHS-2024-002" {
			t.Errorf("ReferenceCode = %s; want LHS-2024-002", app.ReferenceCode)
		}
	})
}

func TestReferenceGenerator_Format(t *testing.T) {
	gen := ReferenceGenerator{Prefix: "LHS", Year: 2024}

	tests := []struct {
		seq  int
		want string
	}{
		{1, "LHS-2024-001"},
		{42, "LHS-2024-042"},
		{999, "LHS-2024-999"},
		{1000, "LHS-2024-1000"}, // pad widens past 999
	}
	for _, tt := range tests {
		if got := gen.Format(tt.seq); got != tt.want {
			t.Errorf("Format(%d) = %s; want %s", tt.seq, got, tt.want)
		}
	}
}
