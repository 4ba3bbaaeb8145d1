// manage.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orbithq/orbit-server/internal/models"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/utils"
	"gorm.io/gorm"
)

// ManageHandler serves the per-app-key management trust domain under
// /manage. The AuthAPIKey middleware resolves the app into locals.
type ManageHandler struct {
	DB *gorm.DB
}

func managedApp(c *fiber.Ctx) *models.Application {
	return c.Locals("app").(*models.Application)
}

// Stats handles GET /manage/stats?start=2024-01-01&end=2024-01-31
// @Summary Query app analytics
// @Description Downloads, DAU and Dn retention for the authenticated app over a UTC date window
// @Tags Manage
// @Produce json
// @Param start query string false "Inclusive start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param end query string false "Inclusive end date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security ApiKeyAuth
// @Router /manage/stats [get]
func (h *ManageHandler) Stats(c *fiber.Ctx) error {
	app := managedApp(c)

	defStart, defEnd := services.DefaultDateRange()
	start := c.Query("start", defStart)
	end := c.Query("end", defEnd)

	stats, err := services.ComputeStats(h.DB, app.AppID, start, end)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"downloads": fiber.Map{
			"total":       stats.DownloadsTotal,
			"by_platform": stats.DownloadsByPlatform,
			"by_date":     stats.DownloadsByDate,
		},
		"dau": fiber.Map{
			"avg":     stats.DAUAvg,
			"by_date": stats.DAUByDate,
		},
		"retention": stats.Retention,
	})
}

// CreateVersion handles POST /manage/version
// @Summary Publish a version for the authenticated app
// @Tags Manage
// @Accept json
// @Produce json
// @Param body body services.VersionInput true "Version payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security ApiKeyAuth
// @Router /manage/version [post]
func (h *ManageHandler) CreateVersion(c *fiber.Ctx) error {
	app := managedApp(c)

	var in services.VersionInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	v, err := services.CreateVersion(h.DB, app.AppID, in)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"version": v.Version})
}

// ListFeedbacks handles GET /manage/feedbacks?page=1&limit=20
// @Summary List feedback for the authenticated app
// @Tags Manage
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, max 100" default(20)
// @Success 200 {object} services.FeedbackPage
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security ApiKeyAuth
// @Router /manage/feedbacks [get]
func (h *ManageHandler) ListFeedbacks(c *fiber.Ctx) error {
	app := managedApp(c)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := services.ListFeedbacks(h.DB, app.AppID, page, limit)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// AppInfo handles GET /manage/app
// @Summary Look up the authenticated app
// @Tags Manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security ApiKeyAuth
// @Router /manage/app [get]
func (h *ManageHandler) AppInfo(c *fiber.Ctx) error {
	app := managedApp(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"app_id":   app.AppID,
		"app_name": app.AppName,
	})
}
