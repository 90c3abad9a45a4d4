package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"date only", "2024-03-15", timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"rfc3339", "2024-03-15T08:30:00Z", timePtr(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC))},
		{"padded", "  2024-03-15 ", timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"empty", "", nil},
		{"garbage", "15/03/2024", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormField(t *testing.T) {
	form := map[string][]string{
		"phone":   {"555-0100"},
		"address": {""},
	}

	if v, ok := formField(form, "phone"); !ok || v != "555-0100" {
		t.Errorf("phone = %q, %v", v, ok)
	}
	// Explicitly-empty and absent must be distinguishable
	if v, ok := formField(form, "address"); !ok || v != "" {
		t.Errorf("address = %q, %v; want present and empty", v, ok)
	}
	if _, ok := formField(form, "position"); ok {
		t.Error("absent field reported as present")
	}
}

// Clearing an employeeId must remove the field, not store "". The unique
// index on employeeId is sparse and only skips absent fields, so a stored
// empty string would collide across employees without an id.
func TestApplyEmployeeIDChange(t *testing.T) {
	t.Run("cleared id is unset", func(t *testing.T) {
		set, unset := bson.M{}, bson.M{}
		applyEmployeeIDChange("", set, unset)

		if _, found := set["employeeId"]; found {
			t.Error("cleared employeeId must not be written via $set")
		}
		if _, found := unset["employeeId"]; !found {
			t.Error("cleared employeeId must be removed via $unset")
		}
	})

	t.Run("new id is set", func(t *testing.T) {
		set, unset := bson.M{}, bson.M{}
		applyEmployeeIDChange("EMP-042", set, unset)

		if set["employeeId"] != "EMP-042" {
			t.Errorf("set = %v", set)
		}
		if len(unset) != 0 {
			t.Errorf("unset = %v, want empty", unset)
		}
	})
}

func TestUpdateDocument(t *testing.T) {
	set := bson.M{"status": "inactive"}

	update := updateDocument(set, bson.M{})
	if _, found := update["$unset"]; found {
		t.Error("no $unset operator expected when nothing is removed")
	}
	if update["$set"].(bson.M)["status"] != "inactive" {
		t.Errorf("$set = %v", update["$set"])
	}

	update = updateDocument(set, bson.M{"employeeId": ""})
	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatalf("$unset missing: %v", update)
	}
	if _, found := unset["employeeId"]; !found {
		t.Errorf("$unset = %v, want employeeId", unset)
	}
}

func TestIsValidEmployeeStatus(t *testing.T) {
	for _, valid := range []string{"active", "inactive", "on-leave"} {
		if !isValidEmployeeStatus(valid) {
			t.Errorf("%q rejected", valid)
		}
	}
	for _, invalid := range []string{"", "ACTIVE", "fired", "leave"} {
		if isValidEmployeeStatus(invalid) {
			t.Errorf("%q accepted", invalid)
		}
	}
}

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero page clamps", "page=0", 1, 10},
		{"negative values", "page=-2&limit=-5", 1, 10},
		{"limit over cap resets", "limit=500", 1, 10},
		{"junk ignored", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			page, limit := paginationParams(c)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("paginationParams(%q) = (%d, %d), want (%d, %d)", tt.query, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
