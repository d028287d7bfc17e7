package library

import (
	"strings"

	"github.com/sorenlind/preservationist/internal/tags"
)

// variousArtists is the album artist expected on compilation albums.
const variousArtists = "Various Artists"

// rule is one step of a classification chain. The first rule whose match
// predicate holds produces the chain's message; later rules are never
// evaluated, so the order of a chain encodes priority. A matching rule may
// produce an empty message, which suppresses the rest of the chain.
type rule struct {
	match   func(*Album) bool
	message func(*Album) string
}

// evalChain evaluates a chain with first-match-wins semantics.
func evalChain(a *Album, chain []rule) string {
	for _, r := range chain {
		if r.match(a) {
			return r.message(a)
		}
	}
	return ""
}

func noMessage(*Album) string { return "" }

func constMessage(msg string) func(*Album) string {
	return func(*Album) string { return msg }
}

// fileRules flags albums with unreadable or stray files.
var fileRules = []rule{
	// A folder holding nothing but video or document companions (iTunes
	// Extras and the like) is expected; don't flag it.
	{
		match: func(a *Album) bool {
			if len(a.Songs) > 0 || len(a.Erroneous) == 0 {
				return false
			}
			for _, s := range a.Erroneous {
				if !tags.IsCompanionFile(s.FileName) {
					return false
				}
			}
			return true
		},
		message: noMessage,
	},
	{
		match: func(a *Album) bool { return len(a.Erroneous) > 0 },
		message: func(a *Album) string {
			var errors []string
			for _, s := range a.Erroneous {
				errors = append(errors, s.Error)
			}
			return distinctValues(errors)
		},
	},
	{
		match:   func(a *Album) bool { return len(a.Songs) == 0 },
		message: constMessage("Empty album"),
	},
	{
		match: func(a *Album) bool { return a.FileType == Mixed },
		message: func(a *Album) string {
			return "Mixed file type: " + distinctValues(a.fileTypes())
		},
	},
}

// artworkRules flags albums whose covers deviate from a single identical
// JPEG cover per song at a canonical size. Later conditions may also hold
// when an earlier one fires; the order is part of the contract.
var artworkRules = []rule{
	{
		match:   func(a *Album) bool { return len(a.Songs) == 0 },
		message: noMessage,
	},
	{
		match: func(a *Album) bool {
			for _, s := range a.Songs {
				if s.HasCover() {
					return false
				}
			}
			return true
		},
		message: constMessage("No artwork"),
	},
	{
		match: func(a *Album) bool {
			for _, s := range a.Songs {
				if !s.HasCover() {
					return true
				}
			}
			return false
		},
		message: constMessage("Some artwork missing"),
	},
	{
		match: func(a *Album) bool {
			for _, s := range a.Songs {
				if len(s.Covers) > 1 {
					return true
				}
			}
			return false
		},
		message: constMessage("Multiple covers per file"),
	},
	{
		// From here on every song has exactly one cover.
		match: func(a *Album) bool {
			return mixedCover(a, func(c tags.Artwork) string { return c.ContentHash })
		},
		message: constMessage("Multiple covers"),
	},
	{
		match: func(a *Album) bool {
			return mixedCover(a, func(c tags.Artwork) string { return c.Format.String() })
		},
		message: constMessage("Multiple image formats"),
	},
	{
		match:   anyCover(func(c tags.Artwork) bool { return c.Format == tags.FormatPNG }),
		message: constMessage("PNG artwork"),
	},
	{
		match:   anyCover(func(c tags.Artwork) bool { return c.Format == tags.FormatUnknown }),
		message: constMessage("Unknown artwork format"),
	},
	{
		match:   anyCover(func(c tags.Artwork) bool { return !canonicalArtworkSizes[c.Size()] }),
		message: constMessage("Bad artwork size"),
	},
}

// mixedCover reports whether the songs' first covers disagree on a property.
func mixedCover(a *Album, property func(tags.Artwork) string) bool {
	var values []string
	for _, s := range a.Songs {
		values = append(values, property(s.Covers[0]))
	}
	return uniqueOrMixed(values) == Mixed
}

// anyCover builds a predicate matching albums where any song's first cover
// satisfies the condition.
func anyCover(cond func(tags.Artwork) bool) func(*Album) bool {
	return func(a *Album) bool {
		for _, s := range a.Songs {
			if cond(s.Covers[0]) {
				return true
			}
		}
		return false
	}
}

// namingRules flags conflicting artist, album and sort tags. The labels of
// the two case-only rules are swapped relative to the field they check;
// long-lived reports are grepped by these exact strings, so they stay.
var namingRules = []rule{
	{
		match:   func(a *Album) bool { return len(a.Songs) == 0 },
		message: noMessage,
	},
	{
		match:   func(a *Album) bool { return a.Compilation == Mixed },
		message: constMessage("Some set as compilation"),
	},
	{
		match: func(a *Album) bool {
			return a.Compilation == "True" && a.AlbumArtist != variousArtists
		},
		message: func(a *Album) string {
			return "Unexpected album artist for compilation: " + distinctValues(a.albumArtists())
		},
	},
	{
		match: func(a *Album) bool {
			return a.Compilation == "True" && len(a.Songs) > 1 && a.Artist != Mixed
		},
		message: constMessage("Expected multiple artists for compilation"),
	},
	{
		match: func(a *Album) bool {
			return a.Compilation == "False" && a.AlbumArtist == variousArtists
		},
		message: constMessage("Unexpected album artist for non-compilation"),
	},
	{
		match: func(a *Album) bool {
			return a.AlbumArtist == Mixed && !mixedIgnoringCase(a.albumArtists())
		},
		message: func(a *Album) string {
			return "Artist differs by case only: " + distinctValues(a.albumArtists())
		},
	},
	{
		match: func(a *Album) bool {
			return a.Artist == Mixed && !mixedIgnoringCase(a.artists())
		},
		message: func(a *Album) string {
			return "Album artist differs by case only: " + distinctValues(a.artists())
		},
	},
	{
		match: func(a *Album) bool {
			return a.Compilation == "False" && a.Artist == Mixed
		},
		message: func(a *Album) string {
			// A lead artist with featured guests is fine: either every song
			// artist extends the album artist, or every song artist is
			// contained in it.
			if allSongs(a, func(s *tags.SongFacts) bool {
				return strings.HasPrefix(s.Artist, a.AlbumArtist)
			}) {
				return ""
			}
			if allSongs(a, func(s *tags.SongFacts) bool {
				return strings.Contains(a.AlbumArtist, s.Artist)
			}) {
				return ""
			}
			return "Expected single artist for non-compilation: " + distinctValues(a.artists())
		},
	},
	{
		match: func(a *Album) bool { return a.Name == Mixed },
		message: func(a *Album) string {
			return "Mixed album: " + distinctValues(a.songValues(func(s *tags.SongFacts) string { return s.Album }))
		},
	},
	{
		match: func(a *Album) bool { return a.SortAlbum == Mixed },
		message: func(a *Album) string {
			return "Mixed sort album: " + distinctValues(a.songValues(func(s *tags.SongFacts) string { return s.SortAlbum }))
		},
	},
	{
		match: func(a *Album) bool { return a.AlbumArtist == Mixed },
		message: func(a *Album) string {
			return "Mixed album artist: " + distinctValues(a.albumArtists())
		},
	},
	{
		match: func(a *Album) bool { return a.SortAlbumArtist == Mixed },
		message: func(a *Album) string {
			return "Mixed sort album artist: " + distinctValues(a.songValues(func(s *tags.SongFacts) string { return s.SortAlbumArtist }))
		},
	},
	{
		match:   func(a *Album) bool { return a.AlbumArtist == "" },
		message: constMessage("No album artist"),
	},
}

func (a *Album) albumArtists() []string {
	return a.songValues(func(s *tags.SongFacts) string { return s.AlbumArtist })
}

func (a *Album) artists() []string {
	return a.songValues(func(s *tags.SongFacts) string { return s.Artist })
}

// mixedIgnoringCase reports whether values still disagree after lower-casing.
func mixedIgnoringCase(values []string) bool {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return uniqueOrMixed(lowered) == Mixed
}

// allSongs reports whether the condition holds for every parsed song.
func allSongs(a *Album, cond func(*tags.SongFacts) bool) bool {
	for _, s := range a.Songs {
		if !cond(s) {
			return false
		}
	}
	return true
}
