package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/studium/apps/api/echo"
	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/streak"
	"github.com/trezcool/studium/core/syllabus"
	aidummy "github.com/trezcool/studium/services/ai/dummy"
	emailsvc "github.com/trezcool/studium/services/email"
	inmemdb "github.com/trezcool/studium/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testDeps struct {
	conf      *core.Config
	server    Server
	ai        *aidummy.Service
	classSvc  *class.Service
	schedSvc  *schedule.Service
	streakSvc *streak.Service
}

func setup(t *testing.T) *testDeps {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.Debug = false

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	logger := core.NopLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	ai := aidummy.NewService()

	classSvc := class.NewService(inmemdb.NewClassRepository(db))
	schedSvc := schedule.NewService(inmemdb.NewScheduleRepository(db), logger)
	streakSvc := streak.NewService(inmemdb.NewStreakRepository(db))
	syllabusSvc := syllabus.NewService(ai, ai, classSvc, schedSvc, mailSvc, conf, logger)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		ClassSvc:    classSvc,
		ScheduleSvc: schedSvc,
		SyllabusSvc: syllabusSvc,
		StreakSvc:   streakSvc,
		Validate:    validate,
		Translator:  translator,
	})

	return &testDeps{
		conf:      conf,
		server:    server,
		ai:        ai,
		classSvc:  classSvc,
		schedSvc:  schedSvc,
		streakSvc: streakSvc,
	}
}

func testCtx() context.Context { return context.Background() }

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

func getToken(t *testing.T, conf *core.Config, userID, email string) string {
	token, err := GenerateToken(conf, NewClaims(conf, userID, email))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
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
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
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
