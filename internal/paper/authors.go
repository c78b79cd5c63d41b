// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"encoding/json"
	"strings"
)

/*
NormalizeAuthors converts any historical author representation into the
canonical []Author form.

# Accepted Shapes

  - JSON string: comma-separated names ("Alice, Bob")
  - JSON array of strings: bare names
  - JSON array of objects: the canonical form, possibly partial
  - A mixed array of strings and objects

# Canonical Guarantees

  - Names are trimmed; empty entries are dropped.
  - Duplicate names (case-insensitive) are collapsed, first occurrence wins.
  - Emails are lowercased.
  - Exactly one author is corresponding: the first flagged one wins; if none
    is flagged, the first author is promoted.

nil, empty, or undecodable input yields an empty (non-nil) list.
*/
func NormalizeAuthors(raw json.RawMessage) []Author {
	authors := decodeAuthors(raw)
	return canonicalize(authors)
}

// NormalizeAuthorList re-canonicalizes an already-typed author list. Used
// defensively before every save so no code path can persist a malformed list.
func NormalizeAuthorList(authors []Author) []Author {
	return canonicalize(authors)
}

// decodeAuthors turns the raw JSON into a loosely-typed author slice.
func decodeAuthors(raw json.RawMessage) []Author {
	if len(raw) == 0 {
		return nil
	}

	// Shape 1: a single comma-separated string.
	var commaString string
	if err := json.Unmarshal(raw, &commaString); err == nil {
		authors := make([]Author, 0)
		for _, name := range strings.Split(commaString, ",") {
			authors = append(authors, Author{Name: name})
		}
		return authors
	}

	// Shapes 2-4: an array whose elements may be strings or objects.
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	authors := make([]Author, 0, len(elements))
	for _, element := range elements {
		var name string
		if err := json.Unmarshal(element, &name); err == nil {
			authors = append(authors, Author{Name: name})
			continue
		}

		var author Author
		if err := json.Unmarshal(element, &author); err == nil {
			authors = append(authors, author)
		}
		// Unrecognized elements (numbers, nested arrays) are dropped.
	}
	return authors
}

// canonicalize applies the trimming, dedup, and corresponding-author rules.
func canonicalize(authors []Author) []Author {
	seen := make(map[string]bool, len(authors))
	result := make([]Author, 0, len(authors))

	for _, author := range authors {
		author.Name = strings.TrimSpace(author.Name)
		if author.Name == "" {
			continue
		}

		key := strings.ToLower(author.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		author.Email = strings.ToLower(strings.TrimSpace(author.Email))
		author.UserID = strings.TrimSpace(author.UserID)
		result = append(result, author)
	}

	// Exactly one corresponding author: first flagged wins, default to the
	// first author when nobody is flagged.
	corresponding := -1
	for i, author := range result {
		if author.IsCorresponding {
			if corresponding == -1 {
				corresponding = i
			} else {
				result[i].IsCorresponding = false
			}
		}
	}
	if corresponding == -1 && len(result) > 0 {
		result[0].IsCorresponding = true
	}

	return result
}
