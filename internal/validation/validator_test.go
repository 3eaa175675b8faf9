// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

type windowRequest struct {
	Window int    `json:"window" validate:"nonnegwindow"`
	Sort   string `json:"sort" validate:"omitempty,oneof=roi revenue users"`
	Limit  int    `json:"limit" validate:"min=0,max=1000"`
	Plain  string `validate:"omitempty,min=2"`
}

func TestValidateStruct_Requests(t *testing.T) {
	tests := []struct {
		name      string
		input     windowRequest
		wantField string
		wantTag   string
	}{
		{"valid", windowRequest{Window: 7, Sort: "roi", Limit: 10}, "", ""},
		{"zero window", windowRequest{Window: 0}, "", ""},
		{"max window", windowRequest{Window: 3650}, "", ""},
		{"negative window", windowRequest{Window: -1}, "window", "nonnegwindow"},
		{"window too large", windowRequest{Window: 3651}, "window", "nonnegwindow"},
		{"bad sort", windowRequest{Window: 7, Sort: "ltv"}, "sort", "oneof"},
		{"limit too large", windowRequest{Window: 7, Limit: 5000}, "limit", "max"},
		{"field without json tag", windowRequest{Window: 7, Plain: "x"}, "Plain", "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error field=%q tag=%q, want field=%q tag=%q",
					errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_ContentItem(t *testing.T) {
	release := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    models.ContentItem
		wantTag string
	}{
		{"valid", models.ContentItem{ID: "S1", Genre: "Drama", ReleaseTime: release, ProductionCost: 10}, ""},
		{"zero cost allowed", models.ContentItem{ID: "S1", Genre: "Drama", ReleaseTime: release}, ""},
		{"missing id", models.ContentItem{Genre: "Drama", ReleaseTime: release}, "required"},
		{"organic genre", models.ContentItem{ID: "S1", Genre: "Organic", ReleaseTime: release}, "notorganic"},
		{"organic genre any case", models.ContentItem{ID: "S1", Genre: " organic ", ReleaseTime: release}, "notorganic"},
		{"negative cost", models.ContentItem{ID: "S1", Genre: "Drama", ReleaseTime: release, ProductionCost: -1}, "gte"},
		{"missing release", models.ContentItem{ID: "S1", Genre: "Drama"}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.item)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			if got := err.Errors()[0].Tag(); got != tt.wantTag {
				t.Errorf("tag = %q, want %q", got, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_UserRecord(t *testing.T) {
	signup := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	valid := models.UserRecord{ID: "U1", SignupTime: signup, LastActiveTime: signup, MonthlyRevenue: 9.99}
	if err := ValidateStruct(&valid); err != nil {
		t.Fatalf("same-day user should be valid, got %v", err)
	}

	backwards := valid
	backwards.LastActiveTime = signup.AddDate(0, 0, -1)
	err := ValidateStruct(&backwards)
	if err == nil {
		t.Fatal("last active before signup should fail")
	}
	if fe := err.Errors()[0]; fe.Field() != "last_active_date" || fe.Tag() != "gtefield" {
		t.Errorf("got field=%q tag=%q", fe.Field(), fe.Tag())
	}

	negative := valid
	negative.MonthlyRevenue = -5
	err = ValidateStruct(&negative)
	if err == nil {
		t.Fatal("negative revenue should fail")
	}
	if fe := err.Errors()[0]; fe.Field() != "monthly_revenue" {
		t.Errorf("got field=%q, want monthly_revenue", fe.Field())
	}
}

// ===================================================================================================
// APIError Conversion Tests
// ===================================================================================================

func TestToAPIError_Single(t *testing.T) {
	err := ValidateStruct(&windowRequest{Window: -3})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "window must be an attribution window") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "window" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	err := ValidateStruct(&windowRequest{Window: -3, Sort: "bogus"})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "window:") || !strings.Contains(apiErr.Message, "sort:") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", ve.ToAPIError().Message)
	}
}
