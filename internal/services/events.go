// events.go
//
// Orbit: lightweight multi-platform analytics and update-check service
// Copyright (c) 2026 The Orbit Authors
//
// This file is part of orbit-server.
// orbit-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// orbit-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with orbit-server.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/types"
	"gorm.io/gorm"
)

// EventInput carries the client event payload. Timestamp tolerates number or
// string serialization across SDKs.
type EventInput struct {
	DistinctID string          `json:"distinct_id"`
	Event      string          `json:"event"`
	Platform   string          `json:"platform"`
	AppVersion string          `json:"app_version"`
	Timestamp  types.FlexInt64 `json:"timestamp"`
}

// RecordEvent validates and persists one immutable event row. No
// deduplication: SDK retries after false-negative send failures produce
// duplicate rows, and the stats engine tolerates that through distinct-id
// counting.
func RecordEvent(db *gorm.DB, appID string, in EventInput) error {
	if in.DistinctID == "" || in.Event == "" {
		return types.Validation("Missing required fields: distinct_id, event")
	}

	if in.Event != models.EventFirstLaunch && in.Event != models.EventAppOpen {
		return types.Validation("Invalid event. Allowed: first_launch, app_open")
	}

	ts := in.Timestamp.Int64()
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	ev := models.Event{
		AppID:      appID,
		DistinctID: in.DistinctID,
		Event:      in.Event,
		Timestamp:  ts,
	}
	if in.Platform != "" {
		p := strings.ToLower(in.Platform)
		ev.Platform = &p
	}
	if in.AppVersion != "" {
		v := in.AppVersion
		ev.AppVersion = &v
	}

	return db.Create(&ev).Error
}

// FeedbackInput carries the client feedback payload.
type FeedbackInput struct {
	Content    string          `json:"content"`
	Contact    string          `json:"contact"`
	DeviceInfo json.RawMessage `json:"device_info"`
}

// RecordFeedback persists one feedback row with a server timestamp.
func RecordFeedback(db *gorm.DB, appID string, in FeedbackInput) error {
	if in.Content == "" {
		return types.Validation("Missing required field: content")
	}

	fb := models.Feedback{
		AppID:   appID,
		Content: in.Content,
	}
	if in.Contact != "" {
		c := in.Contact
		fb.Contact = &c
	}
	if len(in.DeviceInfo) > 0 && string(in.DeviceInfo) != "null" {
		fb.DeviceInfo = models.JSON{JSON: []byte(in.DeviceInfo)}
	}

	return db.Create(&fb).Error
}

// FeedbackPage is one page of feedback rows plus pagination bookkeeping.
type FeedbackPage struct {
	Feedbacks  []models.Feedback `json:"feedbacks"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination mirrors the dashboard's paging contract.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ListFeedbacks returns one page of feedback for an app, newest first.
// Limit is clamped to 100.
func ListFeedbacks(db *gorm.DB, appID string, page, limit int) (*FeedbackPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	var feedbacks []models.Feedback
	err := db.Where("app_id = ?", appID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.Model(&models.Feedback{}).Where("app_id = ?", appID).Count(&total).Error; err != nil {
		return nil, err
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	return &FeedbackPage{
		Feedbacks: feedbacks,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// DeleteFeedback removes exactly one feedback row addressed by (app id,
// feedback id). A feedback id that exists under a different app is not found
// and stays untouched.
func DeleteFeedback(db *gorm.DB, appID string, feedbackID uint64) error {
	res := db.Where("id = ? AND app_id = ?", feedbackID, appID).Delete(&models.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.NotFound("Feedback not found")
	}
	return nil
}
