// sync.go
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
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/orbithq/orbit-server/internal/models"
	"gorm.io/gorm"
)

// ReleaseAsset is one named binary attached to a release.
type ReleaseAsset struct {
	Name        string
	DownloadURL string
}

// Release is one entry of an app's external release list.
type Release struct {
	TagName    string
	Body       string
	Draft      bool
	Prerelease bool
	HTMLURL    string
	Assets     []ReleaseAsset
}

// ReleaseFetcher abstracts the external release source so the reconciliation
// logic can be exercised without the network.
type ReleaseFetcher interface {
	FetchReleases(ctx context.Context, repo string, limit int) ([]Release, error)
}

// platformRule matches an asset filename to a platform tag. Matching is
// case-insensitive; an asset may match several rules.
type platformRule struct {
	platform string
	tokens   []string
	suffixes []string
}

var platformRules = []platformRule{
	{"macos", []string{"mac", "darwin"}, []string{".dmg"}},
	{"windows", []string{"win"}, []string{".exe", ".msi"}},
	{"linux", []string{"linux"}, []string{".appimage", ".deb"}},
	{"ios", []string{"ios"}, []string{".ipa"}},
	{"android", []string{"android"}, []string{".apk", ".aab"}},
}

func (r platformRule) matches(name string) bool {
	for _, tok := range r.tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	for _, suf := range r.suffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// DetectPlatforms classifies a release's assets into a set of platform tags.
// A release with no recognizable asset gets the sentinel tag "all" exactly
// once. The returned slice is sorted for determinism.
func DetectPlatforms(assets []ReleaseAsset) []string {
	set := map[string]struct{}{}

	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		for _, rule := range platformRules {
			if rule.matches(name) {
				set[rule.platform] = struct{}{}
			}
		}
	}

	if len(set) == 0 {
		return []string{"all"}
	}

	platforms := make([]string, 0, len(set))
	for p := range set {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// FindDownloadURL returns the first asset matching the platform's heuristic,
// or "" when none does (relevant for the "all" sentinel).
func FindDownloadURL(assets []ReleaseAsset, platform string) string {
	for _, rule := range platformRules {
		if rule.platform != platform {
			continue
		}
		for _, asset := range assets {
			if rule.matches(strings.ToLower(asset.Name)) {
				return asset.DownloadURL
			}
		}
	}
	return ""
}

// SyncAppReleases reconciles an app's external release list against stored
// versions, inserting only missing (app, platform, version) tuples. Returns
// the number of rows inserted. Re-running against an unchanged list inserts
// nothing.
//
// A fetch failure is soft: it logs and reports zero synced, so the caller
// cannot tell "nothing new" from "source unreachable". The existence check
// and insert are not one transaction; two concurrent syncs of the same app
// can both insert, which is accepted for an hourly job.
func SyncAppReleases(ctx context.Context, db *gorm.DB, fetcher ReleaseFetcher, appID, repo string, limit int) (int, error) {
	releases, err := fetcher.FetchReleases(ctx, repo, limit)
	if err != nil {
		log.Printf("Release fetch failed for %s (%s): %v", appID, repo, err)
		return 0, nil
	}
	if len(releases) == 0 {
		return 0, nil
	}

	synced := 0

	for _, release := range releases {
		if release.Draft || release.Prerelease {
			continue
		}

		version := strings.TrimPrefix(release.TagName, "v")
		platforms := DetectPlatforms(release.Assets)

		for _, platform := range platforms {
			var existing models.Version
			err := db.Where("app_id = ? AND version = ? AND platform = ?", appID, version, platform).
				First(&existing).Error
			if err == nil {
				continue // already synced
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return synced, err
			}

			downloadURL := FindDownloadURL(release.Assets, platform)
			if downloadURL == "" {
				downloadURL = release.HTMLURL
			}

			row := models.Version{
				AppID:       appID,
				Platform:    platform,
				Version:     version,
				VersionCode: ParseVersionCode(version),
				DownloadURL: &downloadURL,
				// Sync never sets force_update; that stays a manual decision.
				ForceUpdate: false,
			}
			if release.Body != "" {
				body := release.Body
				row.Changelog = &body
			}

			if err := db.Create(&row).Error; err != nil {
				return synced, err
			}
			synced++
		}
	}

	return synced, nil
}

// SyncAllApps sweeps every application with a configured release source.
// One app's failure is logged and does not block the rest.
func SyncAllApps(ctx context.Context, db *gorm.DB, fetcher ReleaseFetcher, limit int) {
	var apps []models.Application
	if err := db.Where("github_repo IS NOT NULL").Find(&apps).Error; err != nil {
		log.Printf("Sync sweep: listing apps failed: %v", err)
		return
	}

	for _, app := range apps {
		if app.GithubRepo == nil || *app.GithubRepo == "" {
			continue
		}
		synced, err := SyncAppReleases(ctx, db, fetcher, app.AppID, *app.GithubRepo, limit)
		if err != nil {
			log.Printf("Sync sweep: %s failed: %v", app.AppID, err)
			continue
		}
		log.Printf("Sync sweep: %s synced %d version(s)", app.AppID, synced)
	}
}

// StartSyncScheduler runs SyncAllApps every interval until the returned stop
// function is called. The sweep and the manual per-app trigger share the
// same reconciliation routine.
func StartSyncScheduler(db *gorm.DB, fetcher ReleaseFetcher, interval time.Duration, limit int) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				SyncAllApps(context.Background(), db, fetcher, limit)
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
