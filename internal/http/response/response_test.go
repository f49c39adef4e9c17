package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/pkg/apierr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, ErrorEnvelope, string) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondAPIError(c, err)

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return w.Code, env, w.Body.String()
}

func TestRespondAPIErrorHidesStorageDetail(t *testing.T) {
	cause := errors.New(`dial tcp 10.0.0.5:5432: password "hunter2" rejected`)
	status, env, body := respond(t, apierr.FromStorage("theme.list", cause))

	if status != http.StatusInternalServerError || env.Error.Code != apierr.CodeInternalServerError {
		t.Fatalf("got %d/%s", status, env.Error.Code)
	}
	if env.Error.Message != "internal server error" {
		t.Fatalf("got %q", env.Error.Message)
	}
	if strings.Contains(body, "hunter2") || strings.Contains(body, "dial tcp") {
		t.Fatalf("body leaks storage detail: %s", body)
	}
}

func TestRespondAPIErrorConflictMessageIsGeneric(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: learning_log_entry.owner_id, learning_log_entry.theme_id")
	status, env, body := respond(t, apierr.FromStorage("log.create",
		errors.Join(cause, gorm.ErrDuplicatedKey)))

	if status != http.StatusConflict || env.Error.Code != apierr.CodeConflict {
		t.Fatalf("got %d/%s", status, env.Error.Code)
	}
	if strings.Contains(body, "constraint") || strings.Contains(body, "learning_log_entry") {
		t.Fatalf("body leaks constraint detail: %s", body)
	}
}

func TestRespondAPIErrorKeepsValidationMessage(t *testing.T) {
	status, env, _ := respond(t, apierr.BadRequest("limit must be an integer between 1 and 200"))

	if status != http.StatusBadRequest || env.Error.Code != apierr.CodeBadRequest {
		t.Fatalf("got %d/%s", status, env.Error.Code)
	}
	if env.Error.Message != "limit must be an integer between 1 and 200" {
		t.Fatalf("got %q", env.Error.Message)
	}
}

func TestRespondAPIErrorPlainErrorBecomesInternal(t *testing.T) {
	status, env, body := respond(t, errors.New("nil repo dereference"))

	if status != http.StatusInternalServerError || env.Error.Code != apierr.CodeInternalServerError {
		t.Fatalf("got %d/%s", status, env.Error.Code)
	}
	if strings.Contains(body, "dereference") {
		t.Fatalf("body leaks internal detail: %s", body)
	}
}
