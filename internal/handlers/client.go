// client.go
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
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/utils"
	"gorm.io/gorm"
)

// ClientHandler serves the public client trust domain under /v1/{app_id}.
// App existence is checked by the RequireApp middleware.
type ClientHandler struct {
	DB *gorm.DB
}

// CheckVersion handles GET /v1/:app_id/version
// @Summary Check for an app update
// @Description Compare the caller's current version against the latest stored version for a platform
// @Tags Client
// @Produce json
// @Param app_id path string true "App ID"
// @Param platform query string false "Platform tag" default(ios)
// @Param current query string false "Caller's current version" default(0.0.0)
// @Success 200 {object} services.UpdateCheck
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /v1/{app_id}/version [get]
func (h *ClientHandler) CheckVersion(c *fiber.Ctx) error {
	appID := c.Params("app_id")
	platform := strings.ToLower(c.Query("platform", "ios"))
	current := c.Query("current", "0.0.0")

	result, err := services.CheckUpdate(h.DB, appID, platform, current)
	if err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// TrackEvent handles POST /v1/:app_id/event
// @Summary Record an analytics event
// @Description Persist one first_launch or app_open event
// @Tags Client
// @Accept json
// @Produce json
// @Param app_id path string true "App ID"
// @Param body body services.EventInput true "Event payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /v1/{app_id}/event [post]
func (h *ClientHandler) TrackEvent(c *fiber.Ctx) error {
	var in services.EventInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	if err := services.RecordEvent(h.DB, c.Params("app_id"), in); err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// SubmitFeedback handles POST /v1/:app_id/feedback
// @Summary Submit user feedback
// @Tags Client
// @Accept json
// @Produce json
// @Param app_id path string true "App ID"
// @Param body body services.FeedbackInput true "Feedback payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /v1/{app_id}/feedback [post]
func (h *ClientHandler) SubmitFeedback(c *fiber.Ctx) error {
	var in services.FeedbackInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid JSON body", fiber.StatusBadRequest)
	}

	if err := services.RecordFeedback(h.DB, c.Params("app_id"), in); err != nil {
		return utils.APIErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
