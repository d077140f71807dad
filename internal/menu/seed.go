package menu

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
)

// SeedFromFile imports a menu JSON file (legacy or canonical halls) when no document exists yet.
// It reports whether anything was imported.
func (r *Repository) SeedFromFile(ctx context.Context, path string, now time.Time) (bool, error) {
	if path == "" {
		return false, nil
	}
	current, err := r.Latest(ctx)
	if err != nil {
		return false, err
	}
	if current != nil {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read seed file %s", path)
	}

	doc, err := DecodeDocument(data, now)
	if err != nil {
		return false, errors.Wrapf(err, "seed file %s", path)
	}
	if err := r.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
