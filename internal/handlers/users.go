// users.go
//
// A role-scoped data service for garment manufacturing management
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of garmentdb.
// garmentdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// garmentdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with garmentdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles actor account routes
type UserHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List all user accounts
// @Description Get every actor account, admin only
// @Tags Users
// @Produce json
// @Success 200 {array} models.Actor
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	actors, err := services.ListActors(h.DB)
	if err != nil {
		return fail(c, err, "listUsers")
	}
	return utils.SuccessResponse(c, actors, fiber.StatusOK)
}

// Managers handles GET /api/users/managers
// @Summary List active unit managers
// @Tags Users
// @Produce json
// @Success 200 {array} models.Actor
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/managers [get]
func (h *UserHandler) Managers(c *fiber.Ctx) error {
	actors, err := services.ListManagers(h.DB)
	if err != nil {
		return fail(c, err, "listManagers")
	}
	return utils.SuccessResponse(c, actors, fiber.StatusOK)
}

// Clients handles GET /api/users/clients
// @Summary List active clients
// @Tags Users
// @Produce json
// @Success 200 {array} models.Actor
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/clients [get]
func (h *UserHandler) Clients(c *fiber.Ctx) error {
	actors, err := services.ListClients(h.DB)
	if err != nil {
		return fail(c, err, "listClients")
	}
	return utils.SuccessResponse(c, actors, fiber.StatusOK)
}

// Me handles GET /api/users/profile
// @Summary Get the authenticated account
// @Tags Users
// @Produce json
// @Success 200 {object} models.Actor
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/profile [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "authentication")
	}
	return utils.SuccessResponse(c, actor, fiber.StatusOK)
}

// UpdateMe handles PUT /api/users/profile
// @Summary Update the authenticated account's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param input body services.ActorInput true "Profile fields"
// @Success 200 {object} models.Actor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/profile [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "authentication")
	}

	var input services.ActorInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	updated, err := services.UpdateProfile(h.DB, actor, &input)
	if err != nil {
		return fail(c, err, "updateProfile")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// Create handles POST /api/users
// @Summary Create a user account
// @Tags Users
// @Accept json
// @Produce json
// @Param input body services.ActorInput true "Account fields"
// @Success 201 {object} models.Actor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.ActorInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	actor, err := services.CreateActor(h.DB, &input)
	if err != nil {
		return fail(c, err, "createUser")
	}
	return utils.SuccessResponse(c, actor, fiber.StatusCreated)
}

// Get handles GET /api/users/:id
// @Summary Get one user account
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Actor
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	actor, err := services.GetActorByID(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getUser")
	}
	return utils.SuccessResponse(c, actor, fiber.StatusOK)
}

// Update handles PUT /api/users/:id
// @Summary Update a user account including its role
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param input body services.ActorInput true "Account fields"
// @Success 200 {object} models.Actor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input services.ActorInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	actor, err := services.UpdateActor(h.DB, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateUser")
	}
	return utils.SuccessResponse(c, actor, fiber.StatusOK)
}

// Delete handles DELETE /api/users/:id
// @Summary Delete a user account
// @Description Hard-delete an account; admin accounts are refused
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteActor(h.DB, c.Params("id")); err != nil {
		return fail(c, err, "deleteUser")
	}
	return utils.MessageResponse(c, "User deleted successfully")
}
