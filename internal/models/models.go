package models

import (
	"time"
)

// Allowed event kinds. Ingestion rejects anything else.
const (
	EventFirstLaunch = "first_launch"
	EventAppOpen     = "app_open"
)

// Application is a registered app. AppID is externally chosen; APIKey is the
// management-scope credential generated at creation.
type Application struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AppID      string    `gorm:"uniqueIndex;size:255;not null" json:"app_id"`
	AppName    string    `gorm:"size:255;not null" json:"app_name"`
	APIKey     string    `gorm:"uniqueIndex;size:64;not null" json:"api_key"`
	GithubRepo *string   `gorm:"size:255" json:"github_repo"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event is an append-only analytics fact. Timestamp is milliseconds since epoch.
// No update or per-event delete path exists; rows go away only with the app.
type Event struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppID      string  `gorm:"index;size:255;not null" json:"app_id"`
	DistinctID string  `gorm:"index;size:255;not null" json:"distinct_id"`
	Event      string  `gorm:"size:32;not null" json:"event"`
	Platform   *string `gorm:"size:32" json:"platform"`
	AppVersion *string `gorm:"size:64" json:"app_version"`
	Timestamp  int64   `gorm:"index;not null" json:"timestamp"`
}

// Feedback is a user-submitted report. DeviceInfo is an opaque serialized blob.
type Feedback struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AppID      string    `gorm:"index;size:255;not null" json:"app_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Contact    *string   `gorm:"size:255" json:"contact"`
	DeviceInfo JSON      `json:"device_info"`
	CreatedAt  time.Time `json:"created_at"`
}

// Version is one published app version for one platform. The same (app, platform)
// pair can carry many rows; "latest" is computed by ordering at read time.
type Version struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AppID       string    `gorm:"index;size:255;not null" json:"app_id"`
	Platform    string    `gorm:"size:32;not null" json:"platform"`
	Version     string    `gorm:"size:64;not null" json:"version"`
	VersionCode int       `gorm:"not null" json:"version_code"`
	DownloadURL *string   `gorm:"size:1024" json:"download_url"`
	Changelog   *string   `gorm:"type:text" json:"changelog"`
	ForceUpdate bool      `gorm:"not null;default:false" json:"force_update"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name for Application
func (Application) TableName() string {
	return "applications"
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}

// TableName overrides the table name for Feedback
func (Feedback) TableName() string {
	return "feedbacks"
}

// TableName overrides the table name for Version
func (Version) TableName() string {
	return "versions"
}
