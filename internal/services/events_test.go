package services_test

import (
	"encoding/json"
	"testing"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/types"
)

func TestRecordEventValidation(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		name  string
		input services.EventInput
	}{
		{"missing distinct_id", services.EventInput{Event: models.EventAppOpen}},
		{"missing event", services.EventInput{DistinctID: "d1"}},
		{"unknown kind", services.EventInput{DistinctID: "d1", Event: "page_view"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.RecordEvent(db, "com.example.app", tc.input)
			var apiErr *types.APIError
			if !asAPIError(err, &apiErr) || apiErr.Code != 400 {
				t.Fatalf("got %v, want a 400 APIError", err)
			}
		})
	}

	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected events must not be persisted, found %d rows", count)
	}
}

func TestRecordEventNormalizesAndDefaults(t *testing.T) {
	db := setupTestDB(t)

	err := services.RecordEvent(db, "com.example.app", services.EventInput{
		DistinctID: "d1",
		Event:      models.EventFirstLaunch,
		Platform:   "iOS",
		AppVersion: "1.2.3",
	})
	if err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	var ev models.Event
	if err := db.First(&ev).Error; err != nil {
		t.Fatalf("event not persisted: %v", err)
	}
	if ev.Platform == nil || *ev.Platform != "ios" {
		t.Errorf("platform = %v, want lowercased ios", ev.Platform)
	}
	if ev.Timestamp == 0 {
		t.Error("omitted timestamp should default to the server clock")
	}
	if ev.AppVersion == nil || *ev.AppVersion != "1.2.3" {
		t.Errorf("app_version = %v, want 1.2.3", ev.AppVersion)
	}
}

func TestRecordEventKeepsClientTimestamp(t *testing.T) {
	db := setupTestDB(t)

	err := services.RecordEvent(db, "com.example.app", services.EventInput{
		DistinctID: "d1",
		Event:      models.EventAppOpen,
		Timestamp:  types.FlexInt64(1704067200000),
	})
	if err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	var ev models.Event
	db.First(&ev)
	if ev.Timestamp != 1704067200000 {
		t.Errorf("timestamp = %d, want the client-supplied 1704067200000", ev.Timestamp)
	}
}

func TestRecordFeedback(t *testing.T) {
	db := setupTestDB(t)

	err := services.RecordFeedback(db, "com.example.app", services.FeedbackInput{
		Content:    "crashes on launch",
		Contact:    "user@example.com",
		DeviceInfo: json.RawMessage(`{"os":"ios 17"}`),
	})
	if err != nil {
		t.Fatalf("RecordFeedback failed: %v", err)
	}

	var fb models.Feedback
	if err := db.First(&fb).Error; err != nil {
		t.Fatalf("feedback not persisted: %v", err)
	}
	if fb.Content != "crashes on launch" {
		t.Errorf("content = %q", fb.Content)
	}
	if fb.Contact == nil || *fb.Contact != "user@example.com" {
		t.Errorf("contact = %v, want user@example.com", fb.Contact)
	}
}

func TestRecordFeedbackRequiresContent(t *testing.T) {
	db := setupTestDB(t)

	err := services.RecordFeedback(db, "com.example.app", services.FeedbackInput{})
	var apiErr *types.APIError
	if !asAPIError(err, &apiErr) || apiErr.Code != 400 {
		t.Fatalf("got %v, want a 400 APIError", err)
	}
}

func TestListFeedbacksPagination(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 25; i++ {
		if err := services.RecordFeedback(db, "com.example.app", services.FeedbackInput{Content: "note"}); err != nil {
			t.Fatalf("seed feedback %d: %v", i, err)
		}
	}

	page, err := services.ListFeedbacks(db, "com.example.app", 1, 20)
	if err != nil {
		t.Fatalf("ListFeedbacks failed: %v", err)
	}
	if len(page.Feedbacks) != 20 {
		t.Errorf("page 1 size = %d, want 20", len(page.Feedbacks))
	}
	if page.Pagination.Total != 25 || page.Pagination.Pages != 2 {
		t.Errorf("pagination = %+v, want total 25 over 2 pages", page.Pagination)
	}

	page2, err := services.ListFeedbacks(db, "com.example.app", 2, 20)
	if err != nil {
		t.Fatalf("ListFeedbacks page 2 failed: %v", err)
	}
	if len(page2.Feedbacks) != 5 {
		t.Errorf("page 2 size = %d, want 5", len(page2.Feedbacks))
	}
}

func TestListFeedbacksClampsParams(t *testing.T) {
	db := setupTestDB(t)

	if err := services.RecordFeedback(db, "com.example.app", services.FeedbackInput{Content: "note"}); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}

	page, err := services.ListFeedbacks(db, "com.example.app", -5, 1000)
	if err != nil {
		t.Fatalf("ListFeedbacks failed: %v", err)
	}
	if page.Pagination.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", page.Pagination.Page)
	}
	if page.Pagination.Limit > 100 {
		t.Errorf("limit = %d, want clamped to 100", page.Pagination.Limit)
	}
}

func TestDeleteFeedbackScopedToApp(t *testing.T) {
	db := setupTestDB(t)

	if err := services.RecordFeedback(db, "com.example.a", services.FeedbackInput{Content: "note"}); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	var fb models.Feedback
	db.First(&fb)

	// Wrong app: 404 and the row survives
	err := services.DeleteFeedback(db, "com.example.b", fb.ID)
	var apiErr *types.APIError
	if !asAPIError(err, &apiErr) || apiErr.Code != 404 {
		t.Fatalf("cross-app delete: got %v, want a 404 APIError", err)
	}
	var count int64
	db.Model(&models.Feedback{}).Count(&count)
	if count != 1 {
		t.Fatalf("cross-app delete removed the row")
	}

	// Owning app: gone
	if err := services.DeleteFeedback(db, "com.example.a", fb.ID); err != nil {
		t.Fatalf("DeleteFeedback failed: %v", err)
	}
	db.Model(&models.Feedback{}).Count(&count)
	if count != 0 {
		t.Errorf("feedback row still present after delete")
	}
}
