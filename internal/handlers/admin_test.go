package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/services"
	"gorm.io/gorm"
)

// stubFetcher serves a fixed release list, recording the repo it was asked for.
type stubFetcher struct {
	releases  []services.Release
	err       error
	lastRepo  string
	lastLimit int
}

func (s *stubFetcher) FetchReleases(_ context.Context, repo string, limit int) ([]services.Release, error) {
	s.lastRepo = repo
	s.lastLimit = limit
	return s.releases, s.err
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func TestAdminRequiresKey(t *testing.T) {
	app, _ := newTestServer(t, nil)

	status, _ := request(t, app, http.MethodGet, "/admin/apps", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("missing key: status = %d, want 401", status)
	}

	status, _ = request(t, app, http.MethodGet, "/admin/apps",
		map[string]string{"X-Admin-Key": "wrong"}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong key: status = %d, want 401", status)
	}
}

func TestAdminCreateApp(t *testing.T) {
	app, db := newTestServer(t, nil)

	status, body := request(t, app, http.MethodPost, "/admin/apps", adminHeaders(), map[string]any{
		"app_id":   "com.example.new",
		"app_name": "New App",
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", status, body)
	}

	created, ok := body["app"].(map[string]any)
	if !ok {
		t.Fatalf("app section missing: %v", body)
	}
	apiKey, _ := created["api_key"].(string)
	if !strings.HasPrefix(apiKey, "orb_") || len(apiKey) != 28 {
		t.Errorf("api_key = %q, want orb_ prefix plus 24 characters", apiKey)
	}

	var row models.Application
	if err := db.Where("app_id = ?", "com.example.new").First(&row).Error; err != nil {
		t.Fatalf("app not persisted: %v", err)
	}
}

func TestAdminCreateAppDuplicate(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")

	status, _ := request(t, app, http.MethodPost, "/admin/apps", adminHeaders(), map[string]any{
		"app_id":   "com.example.app",
		"app_name": "Clone",
	})
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
}

func TestAdminCreateAppValidation(t *testing.T) {
	app, _ := newTestServer(t, nil)

	status, _ := request(t, app, http.MethodPost, "/admin/apps", adminHeaders(), map[string]any{
		"app_name": "No ID",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestAdminGetApp(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")

	status, body := request(t, app, http.MethodGet, "/admin/apps/com.example.app", adminHeaders(), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	row, ok := body["app"].(map[string]any)
	if !ok || row["app_id"] != "com.example.app" {
		t.Errorf("body = %v", body)
	}

	status, _ = request(t, app, http.MethodGet, "/admin/apps/com.example.gone", adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown app: status = %d, want 404", status)
	}
}

func TestAdminUpdateApp(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")

	// Set a release repo
	status, _ := request(t, app, http.MethodPatch, "/admin/apps/com.example.app", adminHeaders(), map[string]any{
		"github_repo": "octo/app",
	})
	if status != http.StatusOK {
		t.Fatalf("set repo: status = %d, want 200", status)
	}
	var row models.Application
	db.Where("app_id = ?", "com.example.app").First(&row)
	if row.GithubRepo == nil || *row.GithubRepo != "octo/app" {
		t.Fatalf("github_repo = %v, want octo/app", row.GithubRepo)
	}

	// Explicit null clears it; absent leaves it alone
	status, _ = request(t, app, http.MethodPatch, "/admin/apps/com.example.app", adminHeaders(), map[string]any{
		"app_name":    "Renamed",
		"github_repo": nil,
	})
	if status != http.StatusOK {
		t.Fatalf("clear repo: status = %d, want 200", status)
	}
	db.Where("app_id = ?", "com.example.app").First(&row)
	if row.GithubRepo != nil {
		t.Errorf("github_repo = %v, want cleared", *row.GithubRepo)
	}
	if row.AppName != "Renamed" {
		t.Errorf("app_name = %q, want Renamed", row.AppName)
	}
}

func TestAdminUpdateAppNoFields(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")

	status, _ := request(t, app, http.MethodPatch, "/admin/apps/com.example.app", adminHeaders(), map[string]any{})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for an empty update", status)
	}
}

func TestAdminDeleteAppCascades(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")
	other := seedApp(t, db, "com.example.other", "Other")

	seedAppData(t, db, "com.example.app")
	seedAppData(t, db, other.AppID)

	status, body := request(t, app, http.MethodDelete, "/admin/apps/com.example.app", adminHeaders(), nil)
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d body = %v, want 200 success", status, body)
	}

	// Only the other app's rows survive
	var apps, events, feedbacks, versions int64
	db.Model(&models.Application{}).Count(&apps)
	db.Model(&models.Event{}).Count(&events)
	db.Model(&models.Feedback{}).Count(&feedbacks)
	db.Model(&models.Version{}).Count(&versions)

	if apps != 1 || events != 1 || feedbacks != 1 || versions != 1 {
		t.Errorf("rows after cascade: apps=%d events=%d feedbacks=%d versions=%d, want 1 each",
			apps, events, feedbacks, versions)
	}

	// The deleted app no longer answers stats queries
	status, _ = request(t, app, http.MethodGet, "/admin/apps/com.example.app/stats", adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Errorf("stats after delete: status = %d, want 404", status)
	}
}

// seedAppData writes one event, feedback and version row for an app.
func seedAppData(t *testing.T, db *gorm.DB, appID string) {
	t.Helper()
	if err := services.RecordEvent(db, appID, services.EventInput{DistinctID: "d1", Event: models.EventAppOpen}); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := services.RecordFeedback(db, appID, services.FeedbackInput{Content: "hi"}); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	if _, err := services.CreateVersion(db, appID, services.VersionInput{Platform: "ios", Version: "1.0.0"}); err != nil {
		t.Fatalf("seed version: %v", err)
	}
}

func TestAdminDeleteAppUnknownIsSuccess(t *testing.T) {
	app, _ := newTestServer(t, nil)

	status, body := request(t, app, http.MethodDelete, "/admin/apps/com.example.gone", adminHeaders(), nil)
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d body = %v, want idempotent success", status, body)
	}
}

func TestAdminDeleteFeedbackWrongApp(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.a", "A")
	seedApp(t, db, "com.example.b", "B")
	if err := services.RecordFeedback(db, "com.example.a", services.FeedbackInput{Content: "hi"}); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	var fb models.Feedback
	db.First(&fb)

	path := fmt.Sprintf("/admin/apps/com.example.b/feedbacks/%d", fb.ID)
	status, _ := request(t, app, http.MethodDelete, path, adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}

	var count int64
	db.Model(&models.Feedback{}).Count(&count)
	if count != 1 {
		t.Error("cross-app delete removed the row")
	}
}

func TestAdminDeleteFeedbackBadID(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.a", "A")

	status, _ := request(t, app, http.MethodDelete, "/admin/apps/com.example.a/feedbacks/abc", adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a non-numeric id", status)
	}
}

func TestAdminSyncGithub(t *testing.T) {
	fetcher := &stubFetcher{releases: []services.Release{
		{
			TagName: "v1.1.0",
			Body:    "Notes",
			Assets: []services.ReleaseAsset{
				{Name: "app-1.1.0.dmg", DownloadURL: "https://example.com/app-1.1.0.dmg"},
			},
		},
	}}
	app, db := newTestServer(t, fetcher)
	seedApp(t, db, "com.example.app", "Example")

	// Not configured yet
	status, body := request(t, app, http.MethodPost, "/admin/apps/com.example.app/sync-github", adminHeaders(), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unconfigured sync: status = %d, want 400 (body %v)", status, body)
	}

	repo := "octo/app"
	db.Model(&models.Application{}).Where("app_id = ?", "com.example.app").Update("github_repo", repo)

	status, body = request(t, app, http.MethodPost, "/admin/apps/com.example.app/sync-github", adminHeaders(), nil)
	if status != http.StatusOK {
		t.Fatalf("sync: status = %d, want 200 (body %v)", status, body)
	}
	if body["synced"] != float64(1) {
		t.Errorf("synced = %v, want 1", body["synced"])
	}
	if fetcher.lastRepo != repo {
		t.Errorf("fetched repo = %q, want %q", fetcher.lastRepo, repo)
	}

	// Second run inserts nothing
	status, body = request(t, app, http.MethodPost, "/admin/apps/com.example.app/sync-github", adminHeaders(), nil)
	if status != http.StatusOK || body["synced"] != float64(0) {
		t.Fatalf("re-sync: status = %d body = %v, want 200 with 0 synced", status, body)
	}
}

func TestAdminSyncGithubUnknownApp(t *testing.T) {
	app, _ := newTestServer(t, &stubFetcher{})

	status, _ := request(t, app, http.MethodPost, "/admin/apps/com.example.gone/sync-github", adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestAdminAppStatsUnknownApp(t *testing.T) {
	app, _ := newTestServer(t, nil)

	status, _ := request(t, app, http.MethodGet, "/admin/apps/com.example.gone/stats", adminHeaders(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestAdminListVersions(t *testing.T) {
	app, db := newTestServer(t, nil)
	seedApp(t, db, "com.example.app", "Example")
	if _, err := services.CreateVersion(db, "com.example.app", services.VersionInput{Platform: "ios", Version: "1.0.0"}); err != nil {
		t.Fatalf("seed version: %v", err)
	}

	status, body := request(t, app, http.MethodGet, "/admin/apps/com.example.app/versions", adminHeaders(), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	versions, ok := body["versions"].([]any)
	if !ok || len(versions) != 1 {
		t.Errorf("versions = %v, want one row", body["versions"])
	}
}
