// health.go
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
	"fmt"
	"log"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	ReleaseSync  string            `json:"release_sync,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck probes the storage backend and, when any app has a release
// source configured, the GitHub API host.
func HealthCheck(db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}
	result.Database = "connected"

	// Probe the sync upstream only when something actually syncs from it.
	var syncedApps int64
	if err := db.Model(&models.Application{}).Where("github_repo IS NOT NULL").Count(&syncedApps).Error; err == nil && syncedApps > 0 {
		if err := utils.PingGithub(); err != nil {
			// Degraded, not unhealthy: sync soft-fails and the API keeps serving.
			result.ReleaseSync = "unreachable"
			result.Details["release_sync_error"] = err.Error()
			log.Printf("Health check - release sync upstream unreachable: %v", err)
		} else {
			result.ReleaseSync = "reachable"
		}
	}

	return result
}
