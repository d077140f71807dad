package main

import (
	"flag"
	"log"

	"DiningAPI/internal/databases"
	"DiningAPI/internal/env"
)

func main() {
	path := flag.String("path", env.GetEnv(env.EnvDatabasePath, "./internal/databases/dining.db"), "path to the database file")
	flag.Parse()

	if err := databases.Migrate(*path); err != nil {
		log.Fatal(err)
	}
	log.Println("Database migration complete for:", *path)
}

/*
This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
