package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/admission"
	"github.com/littleheartschool/backend/core/content"
	assetsvc "github.com/littleheartschool/backend/services/assets"
	dummymail "github.com/littleheartschool/backend/services/email/dummy"
	inmemdb "github.com/littleheartschool/backend/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type testDeps struct {
	conf         *core.Config
	admissionSvc *admission.Service
	contentSvc   *content.Service
	mailSvc      *dummymail.Service
}

func setup(t *testing.T) (Server, *testDeps) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	conf, err := core.NewConfig()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf.Debug = false
	conf.TestMode = true

	logger := testLogger{t: t}
	notifier := core.LogNotifier{Log: logger}
	mailSvc := dummymail.NewService(conf)

	admissionSvc := admission.NewService(inmemdb.NewApplicationRepository(db), logger, notifier, conf)
	collector := admission.NewCollector(admissionSvc, mailSvc, notifier, conf)
	contentSvc := content.NewService(inmemdb.NewContentRepository(db), assetsvc.NewDummyHost(), logger, notifier)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		AdmissionSvc:   admissionSvc,
		Collector:      collector,
		ContentSvc:     contentSvc,
		Limiter:        nil, // no limiting in tests
		DisableReqLogs: true,
	})

	return server, &testDeps{
		conf:         conf,
		admissionSvc: admissionSvc,
		contentSvc:   contentSvc,
		mailSvc:      mailSvc,
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getAdminToken(t *testing.T, conf *core.Config) string {
	claims := GetReviewerClaims(conf, "rev-1", "Head Reviewer", "reviewer@littleheartschool.in")
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getAdminToken() failed: %v", err)
	}
	return token
}

func getNonAdminToken(t *testing.T, conf *core.Config) string {
	claims := GetReviewerClaims(conf, "usr-1", "Plain User", "user@littleheartschool.in")
	claims.IsAdmin = false
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getNonAdminToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func validDraft(student, class string) admission.NewApplication {
	return admission.NewApplication{
		StudentName:      student,
		DateOfBirth:      "2018-04-12",
		Gender:           "Male",
		ApplyingForClass: class,
		PreviousSchool:   "Sunrise Public School",
		FatherName:       "Suresh Kumar",
		FatherPhone:      "+91 9876543210",
		FatherEmail:      "suresh@example.com",
		MotherName:       "Anita Kumar",
		Address:          "12 MG Road",
		City:             "Jaipur",
		Pincode:          "302001",
		Documents: []admission.DocumentFile{
			{Type: admission.DocBirthCertificate, Filename: "birth.pdf", Size: 1 << 10},
			{Type: admission.DocPreviousMarksheet, Filename: "marks.pdf", Size: 2 << 10},
			{Type: admission.DocPhotograph, Filename: "photo.jpg", Size: 1 << 9},
		},
		DeclarationAccepted: true,
	}
}
