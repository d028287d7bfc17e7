// Package library groups the files of one folder into an album, derives
// album-level attributes from the per-song facts, and classifies each album's
// metadata consistency.
package library

import (
	"sort"
	"strings"

	"github.com/sorenlind/preservationist/internal/tags"
)

// Mixed marks an album attribute for which the songs disagree.
const Mixed = "MIXED"

// noneLabel renders an absent tag value in distinct-value lists.
const noneLabel = "[None]"

// maxListLen caps the length of rendered distinct-value lists.
const maxListLen = 100

// canonicalArtworkSizes is the allow-list of acceptable cover dimensions.
var canonicalArtworkSizes = map[string]bool{
	"600x600":   true,
	"1400x1400": true,
}

// Album aggregates the songs of one leaf folder. All derived attributes and
// the three diagnostic messages are computed at construction; an Album is
// read-only afterwards.
type Album struct {
	// Folder-derived identity: the last two path segments.
	ArtistFolder string
	AlbumFolder  string

	// Songs holds successfully parsed files; Erroneous holds files that
	// could not be parsed or have an unsupported type. Every file of the
	// folder lands in exactly one of the two.
	Songs     []*tags.SongFacts
	Erroneous []*tags.SongFacts

	// Attributes reduced with uniqueOrMixed across the songs.
	AlbumArtist     string
	Artist          string
	Name            string
	SortAlbumArtist string
	SortArtist      string
	SortAlbum       string
	Compilation     string // "True", "False" or Mixed
	FileType        string
	ArtworkSize     string

	// PurchasedBy lists the distinct store accounts that bought songs of
	// this album. Legitimately multi-valued, so not reduced.
	PurchasedBy []string

	// The three diagnostic messages, empty when no issue was found.
	FileMessage    string
	ArtworkMessage string
	NamingMessage  string
}

// NewAlbum builds the album for one folder from the extracted facts.
func NewAlbum(artistFolder, albumFolder string, facts []*tags.SongFacts) *Album {
	a := &Album{
		ArtistFolder: artistFolder,
		AlbumFolder:  albumFolder,
	}
	for _, f := range facts {
		if f.Valid() {
			a.Songs = append(a.Songs, f)
		} else {
			a.Erroneous = append(a.Erroneous, f)
		}
	}

	a.AlbumArtist = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.AlbumArtist }))
	a.Artist = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.Artist }))
	a.Name = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.Album }))
	a.SortAlbumArtist = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.SortAlbumArtist }))
	a.SortArtist = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.SortArtist }))
	a.SortAlbum = uniqueOrMixed(a.songValues(func(s *tags.SongFacts) string { return s.SortAlbum }))
	a.Compilation = a.compilationValue()
	a.FileType = uniqueOrMixed(a.fileTypes())
	a.ArtworkSize = uniqueOrMixed(a.artworkSizes())
	a.PurchasedBy = a.purchasedBy()

	a.FileMessage = evalChain(a, fileRules)
	a.ArtworkMessage = evalChain(a, artworkRules)
	a.NamingMessage = evalChain(a, namingRules)

	return a
}

// OK returns true iff no rule chain produced a message.
func (a *Album) OK() bool {
	return a.FileMessage == "" && a.ArtworkMessage == "" && a.NamingMessage == ""
}

// uniqueOrMixed collapses values to the empty string when there are none,
// to the single common value when they all agree, and to the Mixed sentinel
// otherwise. Absent values take part in the comparison like any other.
func uniqueOrMixed(values []string) string {
	if len(values) == 0 {
		return ""
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			return Mixed
		}
	}
	return first
}

// songValues collects one field across the successfully parsed songs.
func (a *Album) songValues(field func(*tags.SongFacts) string) []string {
	values := make([]string, 0, len(a.Songs))
	for _, s := range a.Songs {
		values = append(values, field(s))
	}
	return values
}

// compilationValue reduces the per-song compilation flags to "True",
// "False" or Mixed. An album without songs counts as "False".
func (a *Album) compilationValue() string {
	values := a.songValues(func(s *tags.SongFacts) string {
		if s.Compilation {
			return "True"
		}
		return "False"
	})
	v := uniqueOrMixed(values)
	if v == "" {
		return "False"
	}
	return v
}

// fileTypes collects the extension of every file in the folder, parsed or
// not, so stray file types surface in the file-type attribute.
func (a *Album) fileTypes() []string {
	values := make([]string, 0, len(a.Songs)+len(a.Erroneous))
	for _, s := range a.Songs {
		values = append(values, s.FileType)
	}
	for _, s := range a.Erroneous {
		values = append(values, s.FileType)
	}
	return values
}

// artworkSizes collects the "WxH" string of every cover of every song that
// has artwork. Songs without covers do not take part.
func (a *Album) artworkSizes() []string {
	var values []string
	for _, s := range a.Songs {
		for _, c := range s.Covers {
			values = append(values, c.Size())
		}
	}
	return values
}

// purchasedBy returns the sorted distinct purchaser ids across the songs.
func (a *Album) purchasedBy() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range a.Songs {
		if s.Purchased() && !seen[s.PurchaseID] {
			seen[s.PurchaseID] = true
			ids = append(ids, s.PurchaseID)
		}
	}
	sort.Strings(ids)
	return ids
}

// distinctValues renders values for a diagnostic message: de-duplicated,
// absent values shown as "[None]", sorted, comma-joined and truncated.
// Every rule chain uses this same rendering.
func distinctValues(values []string) string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v == "" {
			v = noneLabel
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return truncate(strings.Join(out, ", "))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxListLen {
		return s
	}
	return string(runes[:maxListLen])
}
