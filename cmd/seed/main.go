// main.go
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

package main

import (
	"flag"
	"log"

	"github.com/localnerve/garmentdb/internal/config"
	"github.com/localnerve/garmentdb/internal/database"
)

// Loads the development fixture set: actors for every role, units with
// owners and managers, a product catalog, inventory, numbered orders,
// production stages and notifications.
func main() {
	force := flag.Bool("force", false, "Clear existing data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *force {
		log.Println("Force flag set, clearing existing data")
		if err := database.Reset(db); err != nil {
			log.Fatalf("Failed to clear existing data: %v", err)
		}
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
}
