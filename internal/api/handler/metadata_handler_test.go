package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func getMetadata(t *testing.T, fn echo.HandlerFunc) map[string]any {
	t.Helper()
	e := newTestEcho()
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestMetadataHandler_AgeGroups(t *testing.T) {
	resp := getMetadata(t, NewMetadataHandler().AgeGroups)

	data, ok := resp["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("expected two age groups, got %v", resp["data"])
	}
	first := data[0].(map[string]any)
	if first["id"] != "primary" || first["tag"] != "начальные-классы" {
		t.Fatalf("unexpected entry: %v", first)
	}
}

func TestMetadataHandler_Skills(t *testing.T) {
	resp := getMetadata(t, NewMetadataHandler().Skills)
	if data, ok := resp["data"].([]any); !ok || len(data) != 6 {
		t.Fatalf("expected six skills, got %v", resp["data"])
	}
}

func TestMetadataHandler_FormData(t *testing.T) {
	resp := getMetadata(t, NewMetadataHandler().FormData)

	data := resp["data"].(map[string]any)
	for key, want := range map[string]int{"stages": 4, "types": 4, "aims": 4} {
		if items, ok := data[key].([]any); !ok || len(items) != want {
			t.Fatalf("%s: expected %d entries, got %v", key, want, data[key])
		}
	}
}

func TestMetadataHandler_TimeRanges(t *testing.T) {
	resp := getMetadata(t, NewMetadataHandler().TimeRanges)

	data := resp["data"].([]any)
	if len(data) != 6 {
		t.Fatalf("expected six buckets, got %d", len(data))
	}
	last := data[5].(map[string]any)
	if last["id"] != "full-lesson" || last["min"] != float64(40) || last["max"] != float64(50) {
		t.Fatalf("unexpected last bucket: %v", last)
	}
}
