package menu

import (
	"strings"

	"DiningAPI/internal/env"
)

// AliasTable maps a requested university tag to every source tag it covers,
// e.g. "columbia" also covers Barnard's halls
type AliasTable map[string][]string

// DefaultAliases is used when UNIVERSITY_ALIASES is not set
func DefaultAliases() AliasTable {
	return AliasTable{"columbia": {"columbia", "barnard"}}
}

// ParseAliases reads "columbia=columbia|barnard,cornell=cornell".
// Tags are lowercased and every university always covers its own tag.
func ParseAliases(value string) AliasTable {
	table := AliasTable{}
	for university, members := range env.ParseMap(value) {
		tags := []string{university}
		for _, tag := range env.SplitList(members, "|") {
			tag = strings.ToLower(tag)
			if tag != university {
				tags = append(tags, tag)
			}
		}
		table[university] = tags
	}
	return table
}

// Sources returns the source tags a university request covers
func (a AliasTable) Sources(university string) []string {
	university = strings.ToLower(strings.TrimSpace(university))
	if tags, ok := a[university]; ok {
		return tags
	}
	return []string{university}
}

// Matches reports whether a hall scraped under source belongs to the requested university
func (a AliasTable) Matches(university, source string) bool {
	source = strings.ToLower(source)
	for _, tag := range a.Sources(university) {
		if tag == source {
			return true
		}
	}
	return false
}

// FindHall returns the first hall with this exact name, scoped to the university when one is given.
// Returns nil when nothing matches.
func (a AliasTable) FindHall(doc Document, name, university string) *HallEntry {
	if name == "" {
		return nil
	}
	for i := range doc {
		if doc[i].Name != name {
			continue
		}
		if university == "" || a.Matches(university, doc[i].Source) {
			return &doc[i]
		}
	}
	return nil
}

// Filter keeps the halls belonging to university; an empty university keeps everything
func (a AliasTable) Filter(doc Document, university string) Document {
	if university == "" {
		return doc
	}
	var out Document
	for _, hall := range doc {
		if a.Matches(university, hall.Source) {
			out = append(out, hall)
		}
	}
	return out
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
