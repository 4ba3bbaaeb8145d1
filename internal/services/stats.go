// stats.go
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
	"math"
	"sort"
	"time"

	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/types"
	"gorm.io/gorm"
)

const dayMillis = 24 * 60 * 60 * 1000

// DateCount is one point of a per-day series.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PlatformCount is one row of the per-platform breakdown.
type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

// Retention holds single-cohort Dn retention anchored at the query start date.
type Retention struct {
	D1  float64 `json:"d1"`
	D7  float64 `json:"d7"`
	D30 float64 `json:"d30"`
}

// Stats is the full aggregation over a date window. Handlers shape it into
// the management and admin response bodies.
type Stats struct {
	DownloadsTotal      int
	DownloadsByDate     []DateCount
	DownloadsByPlatform map[string]int
	PlatformStats       []PlatformCount
	DAUByDate           []DateCount
	DAUAvg              int
	Retention           Retention
}

// DefaultDateRange returns the stats window used when the caller omits query
// params: the last 30 days through today, as UTC calendar dates.
func DefaultDateRange() (string, string) {
	now := time.Now().UTC()
	return now.AddDate(0, 0, -30).Format(time.DateOnly), now.Format(time.DateOnly)
}

// utcDay buckets an epoch-millisecond timestamp into its UTC calendar date.
// Calendar-day boundaries are pinned to UTC everywhere so all SQL dialects
// and SDK clients agree.
func utcDay(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.DateOnly)
}

// ComputeStats aggregates downloads, DAU and retention for an app over the
// inclusive [startDate, endDate] window of UTC calendar dates.
func ComputeStats(db *gorm.DB, appID, startDate, endDate string) (*Stats, error) {
	start, err := time.ParseInLocation(time.DateOnly, startDate, time.UTC)
	if err != nil {
		return nil, types.Validation("Invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(time.DateOnly, endDate, time.UTC)
	if err != nil {
		return nil, types.Validation("Invalid end date, expected YYYY-MM-DD")
	}

	// Half-open millisecond range covering start 00:00 through the instant
	// after end 23:59:59.999.
	startTs := start.UnixMilli()
	endTs := end.UnixMilli() + dayMillis

	stats := &Stats{
		DownloadsByPlatform: map[string]int{},
		DownloadsByDate:     []DateCount{},
		PlatformStats:       []PlatformCount{},
		DAUByDate:           []DateCount{},
	}

	// Downloads: every first_launch in range, including SDK-retry duplicates.
	var launches []models.Event
	err = db.Select("distinct_id, platform, timestamp").
		Where("app_id = ? AND event = ? AND timestamp >= ? AND timestamp < ?",
			appID, models.EventFirstLaunch, startTs, endTs).
		Find(&launches).Error
	if err != nil {
		return nil, err
	}

	byDate := map[string]int{}
	for _, ev := range launches {
		platform := "unknown"
		if ev.Platform != nil && *ev.Platform != "" {
			platform = *ev.Platform
		}
		stats.DownloadsTotal++
		stats.DownloadsByPlatform[platform]++
		byDate[utcDay(ev.Timestamp)]++
	}
	stats.DownloadsByDate = sortedDateCounts(byDate)
	for platform, count := range stats.DownloadsByPlatform {
		stats.PlatformStats = append(stats.PlatformStats, PlatformCount{Platform: platform, Count: count})
	}
	sort.Slice(stats.PlatformStats, func(i, j int) bool {
		return stats.PlatformStats[i].Platform < stats.PlatformStats[j].Platform
	})

	// DAU: distinct ids per day with an app_open. An id active on several
	// platforms still counts once.
	var opens []models.Event
	err = db.Select("distinct_id, timestamp").
		Where("app_id = ? AND event = ? AND timestamp >= ? AND timestamp < ?",
			appID, models.EventAppOpen, startTs, endTs).
		Find(&opens).Error
	if err != nil {
		return nil, err
	}

	perDay := map[string]map[string]struct{}{}
	for _, ev := range opens {
		day := utcDay(ev.Timestamp)
		if perDay[day] == nil {
			perDay[day] = map[string]struct{}{}
		}
		perDay[day][ev.DistinctID] = struct{}{}
	}
	dauByDate := map[string]int{}
	sum := 0
	for day, ids := range perDay {
		dauByDate[day] = len(ids)
		sum += len(ids)
	}
	stats.DAUByDate = sortedDateCounts(dauByDate)
	// Average over days that have at least one open; absent days do not
	// count as zero.
	if len(stats.DAUByDate) > 0 {
		stats.DAUAvg = int(math.Round(float64(sum) / float64(len(stats.DAUByDate))))
	}

	retention, err := calculateRetention(db, appID, start)
	if err != nil {
		return nil, err
	}
	stats.Retention = *retention

	return stats, nil
}

// calculateRetention computes D1/D7/D30 for the cohort of distinct ids whose
// first_launch falls on the cohort date. Retained(n) is the subset with an
// app_open exactly n days later. An empty cohort yields 0, never a division
// error.
func calculateRetention(db *gorm.DB, appID string, cohortDate time.Time) (*Retention, error) {
	cohortStart := cohortDate.UnixMilli()
	cohortEnd := cohortStart + dayMillis

	var rows []models.Event
	err := db.Select("distinct_id").
		Where("app_id = ? AND event = ? AND timestamp >= ? AND timestamp < ?",
			appID, models.EventFirstLaunch, cohortStart, cohortEnd).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	cohort := map[string]struct{}{}
	for _, ev := range rows {
		cohort[ev.DistinctID] = struct{}{}
	}

	result := &Retention{}
	if len(cohort) == 0 {
		return result, nil
	}

	targets := []struct {
		days int
		slot *float64
	}{
		{1, &result.D1},
		{7, &result.D7},
		{30, &result.D30},
	}

	for _, t := range targets {
		dayStart := cohortStart + int64(t.days)*dayMillis
		dayEnd := dayStart + dayMillis

		var opens []models.Event
		err := db.Select("distinct_id").
			Where("app_id = ? AND event = ? AND timestamp >= ? AND timestamp < ?",
				appID, models.EventAppOpen, dayStart, dayEnd).
			Find(&opens).Error
		if err != nil {
			return nil, err
		}

		retained := map[string]struct{}{}
		for _, ev := range opens {
			if _, ok := cohort[ev.DistinctID]; ok {
				retained[ev.DistinctID] = struct{}{}
			}
		}

		ratio := float64(len(retained)) / float64(len(cohort))
		*t.slot = math.Round(ratio*10000) / 10000
	}

	return result, nil
}

func sortedDateCounts(m map[string]int) []DateCount {
	out := make([]DateCount, 0, len(m))
	for date, count := range m {
		out = append(out, DateCount{Date: date, Count: count})
	}
	// ISO dates sort chronologically as strings
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
