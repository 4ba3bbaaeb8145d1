// auth.go
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

package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/types"
	"github.com/orbithq/orbit-server/internal/utils"
	"gorm.io/gorm"
)

// RequireApp guards the public client domain: the :app_id path segment must
// reference an existing application. The row is stored in locals under "app".
func RequireApp(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		appID := c.Params("app_id")

		app, err := services.GetApplication(db, appID)
		if err != nil {
			var apiErr *types.APIError
			if errors.As(err, &apiErr) {
				return utils.ErrorResponse(c, apiErr.Message, apiErr.Code)
			}
			return utils.APIErrorResponse(c, err)
		}

		c.Locals("app", app)
		return c.Next()
	}
}

// AuthAPIKey guards the management domain: the X-API-Key header must map to
// an application, which is stored in locals under "app".
func AuthAPIKey(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			return utils.ErrorResponse(c, "Missing X-API-Key header", fiber.StatusUnauthorized)
		}

		app, err := services.GetApplicationByAPIKey(db, apiKey)
		if err != nil {
			return utils.APIErrorResponse(c, err)
		}

		c.Locals("app", app)
		return c.Next()
	}
}

// AuthAdmin guards the dashboard domain with the shared admin key.
func AuthAdmin(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			return utils.ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
		}
		return c.Next()
	}
}
