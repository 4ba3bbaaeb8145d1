// apps.go
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
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/types"
	"gorm.io/gorm"
)

// GenerateAPIKey produces a management-scope credential: "orb_" followed by
// 24 hex characters.
func GenerateAPIKey() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "orb_" + raw[:24]
}

// GetApplication looks up an app by its external app id.
func GetApplication(db *gorm.DB, appID string) (*models.Application, error) {
	var app models.Application
	err := db.Where("app_id = ?", appID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("App not found")
		}
		return nil, err
	}
	return &app, nil
}

// GetApplicationByAPIKey resolves the management trust domain credential.
func GetApplicationByAPIKey(db *gorm.DB, apiKey string) (*models.Application, error) {
	var app models.Application
	err := db.Where("api_key = ?", apiKey).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Unauthorized("Invalid API key")
		}
		return nil, err
	}
	return &app, nil
}

// ListApplications returns all registered apps, newest first.
func ListApplications(db *gorm.DB) ([]models.Application, error) {
	var apps []models.Application
	if err := db.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication registers a new app with a generated API key.
// A duplicate app id is a conflict.
func CreateApplication(db *gorm.DB, appID, appName string) (*models.Application, error) {
	if appID == "" || appName == "" {
		return nil, types.Validation("Missing required fields: app_id, app_name")
	}

	var existing models.Application
	err := db.Where("app_id = ?", appID).First(&existing).Error
	if err == nil {
		return nil, types.Conflict("App ID already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app := models.Application{
		AppID:   appID,
		AppName: appName,
		APIKey:  GenerateAPIKey(),
	}
	if err := db.Create(&app).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// AppUpdate carries the partial-update payload for an application. Pointers
// distinguish "absent" from "set"; GithubRepoSet marks an explicit null that
// clears the release-source reference.
type AppUpdate struct {
	AppName       *string
	GithubRepo    *string
	GithubRepoSet bool
}

// UpdateApplication mutates the app row in place. At least one field must be
// present. Historical events and versions are untouched.
func UpdateApplication(db *gorm.DB, appID string, upd AppUpdate) error {
	updates := map[string]interface{}{}

	if upd.AppName != nil {
		updates["app_name"] = *upd.AppName
	}
	if upd.GithubRepoSet {
		if upd.GithubRepo == nil {
			updates["github_repo"] = nil
		} else {
			updates["github_repo"] = *upd.GithubRepo
		}
	}

	if len(updates) == 0 {
		return types.Validation("No fields to update")
	}

	return db.Model(&models.Application{}).
		Where("app_id = ?", appID).
		Updates(updates).Error
}

// DeleteApplication removes an app and everything it owns. Child rows go
// first so a failure can never orphan analytics data under a missing parent.
// Irreversible.
func DeleteApplication(db *gorm.DB, appID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("app_id = ?", appID).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", appID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", appID).Delete(&models.Version{}).Error; err != nil {
			return err
		}
		return tx.Where("app_id = ?", appID).Delete(&models.Application{}).Error
	})
}
