// admin.go
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
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler serves the dashboard trust domain under /admin, guarded by
// the shared admin key.
type AdminHandler struct {
	DB        *gorm.DB
	Fetcher   services.ReleaseFetcher
	SyncLimit int
}

// ListApps handles GET /admin/apps
// @Summary List all registered applications
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps [get]
func (h *AdminHandler) ListApps(c *fiber.Ctx) error {
	apps, err := services.ListApplications(h.DB)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"apps": apps})
}

// CreateApp handles POST /admin/apps
// @Summary Register a new application
// @Description Creates an app with a generated management API key
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "app_id and app_name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps [post]
func (h *AdminHandler) CreateApp(c *fiber.Ctx) error {
	var body struct {
		AppID   string `json:"app_id"`
		AppName string `json:"app_name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	app, err := services.CreateApplication(h.DB, body.AppID, body.AppName)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"app": fiber.Map{
			"app_id":   app.AppID,
			"app_name": app.AppName,
			"api_key":  app.APIKey,
		},
	})
}

// GetApp handles GET /admin/apps/:app_id
// @Summary Look up one application
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id} [get]
func (h *AdminHandler) GetApp(c *fiber.Ctx) error {
	app, err := services.GetApplication(h.DB, c.Params("app_id"))
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"app": app})
}

// UpdateApp handles PATCH /admin/apps/:app_id
// @Summary Update application fields
// @Description Any subset of app_name and github_repo; github_repo accepts null to clear the release source
// @Tags Admin
// @Accept json
// @Produce json
// @Param app_id path string true "App ID"
// @Param body body object true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id} [patch]
func (h *AdminHandler) UpdateApp(c *fiber.Ctx) error {
	// RawMessage keeps "absent" and "null" distinguishable for github_repo.
	var body struct {
		AppName    *string         `json:"app_name"`
		GithubRepo json.RawMessage `json:"github_repo"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	upd := services.AppUpdate{AppName: body.AppName}
	if body.GithubRepo != nil {
		upd.GithubRepoSet = true
		if string(body.GithubRepo) != "null" {
			var repo string
			if err := json.Unmarshal(body.GithubRepo, &repo); err != nil {
				return utils.ErrorResponse(c, "github_repo must be a string or null", fiber.StatusBadRequest)
			}
			upd.GithubRepo = &repo
		}
	}

	if err := services.UpdateApplication(h.DB, c.Params("app_id"), upd); err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// DeleteApp handles DELETE /admin/apps/:app_id
// @Summary Delete an application and all its data
// @Description Removes events, feedback and versions before the app row. Irreversible.
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id} [delete]
func (h *AdminHandler) DeleteApp(c *fiber.Ctx) error {
	if err := services.DeleteApplication(h.DB, c.Params("app_id")); err != nil {
		return utils.APIErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// AppStats handles GET /admin/apps/:app_id/stats
// @Summary Query one app's analytics
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Param start query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/stats [get]
func (h *AdminHandler) AppStats(c *fiber.Ctx) error {
	app, err := services.GetApplication(h.DB, c.Params("app_id"))
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	defStart, defEnd := services.DefaultDateRange()
	start := c.Query("start", defStart)
	end := c.Query("end", defEnd)

	stats, err := services.ComputeStats(h.DB, app.AppID, start, end)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"downloads": fiber.Map{
			"total":   stats.DownloadsTotal,
			"by_date": stats.DownloadsByDate,
		},
		"platform_stats": stats.PlatformStats,
		"dau": fiber.Map{
			"avg":     stats.DAUAvg,
			"by_date": stats.DAUByDate,
		},
		"retention": stats.Retention,
	})
}

// AppFeedbacks handles GET /admin/apps/:app_id/feedbacks
// @Summary List one app's feedback
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, max 100" default(20)
// @Success 200 {object} services.FeedbackPage
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/feedbacks [get]
func (h *AdminHandler) AppFeedbacks(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := services.ListFeedbacks(h.DB, c.Params("app_id"), page, limit)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// DeleteFeedback handles DELETE /admin/apps/:app_id/feedbacks/:feedback_id
// @Summary Delete one feedback entry
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Param feedback_id path int true "Feedback ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/feedbacks/{feedback_id} [delete]
func (h *AdminHandler) DeleteFeedback(c *fiber.Ctx) error {
	feedbackID, err := strconv.ParseUint(c.Params("feedback_id"), 10, 64)
	if err != nil {
		return utils.NotFoundResponse(c, "Feedback not found")
	}

	if err := services.DeleteFeedback(h.DB, c.Params("app_id"), feedbackID); err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// ListVersions handles GET /admin/apps/:app_id/versions
// @Summary List one app's version rows
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Success 200 {object} map[string]interface{}
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/versions [get]
func (h *AdminHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := services.ListVersions(h.DB, c.Params("app_id"))
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"versions": versions})
}

// CreateVersion handles POST /admin/apps/:app_id/versions
// @Summary Publish a version for an app
// @Tags Admin
// @Accept json
// @Produce json
// @Param app_id path string true "App ID"
// @Param body body services.VersionInput true "Version payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/versions [post]
func (h *AdminHandler) CreateVersion(c *fiber.Ctx) error {
	var in services.VersionInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	v, err := services.CreateVersion(h.DB, c.Params("app_id"), in)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"version": v.Version})
}

// SyncGithub handles POST /admin/apps/:app_id/sync-github
// @Summary Sync versions from the app's GitHub releases
// @Description Inserts version rows for releases not yet stored; idempotent
// @Tags Admin
// @Produce json
// @Param app_id path string true "App ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security AdminKeyAuth
// @Router /admin/apps/{app_id}/sync-github [post]
func (h *AdminHandler) SyncGithub(c *fiber.Ctx) error {
	app, err := services.GetApplication(h.DB, c.Params("app_id"))
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	if app.GithubRepo == nil || *app.GithubRepo == "" {
		return utils.ErrorResponse(c, "No GitHub repository configured for this app", fiber.StatusBadRequest)
	}

	synced, err := services.SyncAppReleases(c.UserContext(), h.DB, h.Fetcher, app.AppID, *app.GithubRepo, h.SyncLimit)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"synced": synced})
}
