package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuilderWritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusCreated).
		BodyHTML(`<div class="success">tersimpan</div>`).
		Write(rec)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tersimpan") {
		t.Errorf("body = %q, missing content", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestBuilderTriggersAreJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerEntryCreated(2025, 1).
		TriggerFormReset().
		Write(rec)

	header := rec.Header().Get("HX-Trigger")
	if header == "" {
		t.Fatal("HX-Trigger header missing")
	}

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(header), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := triggers["entry:created"]; !ok {
		t.Error("missing entry:created trigger")
	}
	if _, ok := triggers["form:reset"]; !ok {
		t.Error("missing form:reset trigger")
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	ErrorResponse(http.StatusBadRequest, `<script>alert(1)</script>`).Write(rec)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("message was not HTML-escaped")
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rec := httptest.NewRecorder()

	MethodNotAllowedError("GET, POST").Write(rec)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q, want GET, POST", allow)
	}
}
