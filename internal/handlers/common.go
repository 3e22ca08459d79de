// common.go
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
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/internal/utils"
)

// fail maps a service error onto the response envelope. Typed errors
// carry their own status and type; anything else is a 500 tagged with
// the failing operation.
func fail(c *fiber.Ctx, err error, operation string) error {
	if custom, ok := types.AsCustom(err); ok {
		return utils.ErrorResponse(c, custom.Message, custom.Code, custom.Type)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, operation)
}

// parsePagination reads page and limit query parameters with the
// defaults page=1, limit=10. Values below 1 snap back to the default.
func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// parseDate accepts a date-only or RFC3339 query value. An empty or
// malformed value yields nil, so bad filters widen rather than fail.
func parseDate(c *fiber.Ctx, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// pagedResponse writes the list envelope used by every paginated
// listing: the total under countKey, the page geometry, and the items
// under itemsKey.
func pagedResponse(c *fiber.Ctx, countKey string, itemsKey string, items interface{}, total int64, page, limit int) error {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		countKey:     total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
		itemsKey:     items,
	})
}
