// versions.go
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
	"strconv"
	"strings"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/types"
	"gorm.io/gorm"
)

// ParseVersionCode converts a dotted version string into a single sortable
// integer: major*10000 + minor*100 + patch. Missing or non-numeric segments
// count as 0, so "1.2" -> 10200 and "" -> 0.
//
// This is a weak total order: a component >= 100 overflows into the next
// component's digits ("0.0.100" sorts equal to "0.1.0"). Callers that need
// more headroom can supply an explicit version_code.
func ParseVersionCode(version string) int {
	parts := strings.Split(version, ".")
	code := 0
	multipliers := []int{10000, 100, 1}

	for i := 0; i < 3; i++ {
		if i >= len(parts) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			continue
		}
		code += n * multipliers[i]
	}

	return code
}

// UpdateCheck is the client-facing update decision payload.
type UpdateCheck struct {
	HasUpdate   bool    `json:"has_update"`
	Version     string  `json:"version"`
	VersionCode int     `json:"version_code"`
	DownloadURL *string `json:"download_url"`
	Changelog   *string `json:"changelog"`
	ForceUpdate bool    `json:"force_update"`
}

// CheckUpdate answers "is currentVersion behind the latest stored version for
// this platform". An update exists only on a strictly greater version code;
// equal versions never report one. ForceUpdate is surfaced only when an update
// exists AND the stored row carries the flag.
func CheckUpdate(db *gorm.DB, appID, platform, currentVersion string) (*UpdateCheck, error) {
	var latest models.Version
	err := db.Where("app_id = ? AND platform = ?", appID, platform).
		Order("version_code DESC, created_at DESC").
		First(&latest).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing published for this platform: echo the caller's version
			return &UpdateCheck{
				HasUpdate:   false,
				Version:     currentVersion,
				VersionCode: 0,
				ForceUpdate: false,
			}, nil
		}
		return nil, err
	}

	hasUpdate := ParseVersionCode(latest.Version) > ParseVersionCode(currentVersion)

	return &UpdateCheck{
		HasUpdate:   hasUpdate,
		Version:     latest.Version,
		VersionCode: latest.VersionCode,
		DownloadURL: latest.DownloadURL,
		Changelog:   latest.Changelog,
		ForceUpdate: hasUpdate && latest.ForceUpdate,
	}, nil
}

// VersionInput carries the manual version-creation payload.
type VersionInput struct {
	Platform    string  `json:"platform"`
	Version     string  `json:"version"`
	VersionCode *int    `json:"version_code"`
	DownloadURL *string `json:"download_url"`
	Changelog   *string `json:"changelog"`
	ForceUpdate bool    `json:"force_update"`
}

// CreateVersion inserts one version row. The version code defaults to the
// comparator's derived key. No duplicate check is performed on this path;
// callers must avoid re-submitting.
func CreateVersion(db *gorm.DB, appID string, in VersionInput) (*models.Version, error) {
	if in.Platform == "" || in.Version == "" {
		return nil, types.Validation("Missing required fields: platform, version")
	}

	code := ParseVersionCode(in.Version)
	if in.VersionCode != nil && *in.VersionCode != 0 {
		code = *in.VersionCode
	}

	v := models.Version{
		AppID:       appID,
		Platform:    strings.ToLower(in.Platform),
		Version:     in.Version,
		VersionCode: code,
		DownloadURL: in.DownloadURL,
		Changelog:   in.Changelog,
		ForceUpdate: in.ForceUpdate,
	}

	if err := db.Create(&v).Error; err != nil {
		return nil, err
	}

	return &v, nil
}

// ListVersions returns all version rows for an app, newest first.
func ListVersions(db *gorm.DB, appID string) ([]models.Version, error) {
	var versions []models.Version
	err := db.Where("app_id = ?", appID).
		Order("created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}
