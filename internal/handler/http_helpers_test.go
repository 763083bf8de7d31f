package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)
	api := &API{logger: zap.New(core)}

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &service.ValidationError{Fields: validation.Field("title", "is required")}, http.StatusBadRequest, "validation failed"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", service.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"storage", &service.StorageError{Op: "list products", Err: errors.New("disk I/O error")}, http.StatusInternalServerError, "list products failed"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		api.respondServiceError(c, tc.err, "list products")

		if w.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, w.Code)
		}
		env := decodeEnvelope(t, w)
		if env.Success || !strings.HasPrefix(env.Error, tc.msg) {
			t.Fatalf("%s: unexpected envelope %+v", tc.name, env)
		}
		if strings.Contains(w.Body.String(), "disk I/O") {
			t.Fatalf("%s: storage detail leaked to client", tc.name)
		}
	}

	if logs.Len() != 1 {
		t.Fatalf("expected only the storage failure to be logged, got %d entries", logs.Len())
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := parseUint("0", "id"); err == nil {
		t.Fatal("expected zero id to be rejected")
	}
	if id, err := parseUint(" 42 ", "id"); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	if got := parsePositiveInt("-3", 7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}
	if parseOptionalBool("maybe") != nil {
		t.Fatal("expected nil for unrecognised bool")
	}
	if v := parseOptionalBool("false"); v == nil || *v {
		t.Fatal("expected explicit false")
	}
}
