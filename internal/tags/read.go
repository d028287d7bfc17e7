package tags

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Logf receives diagnostic messages from the extractor, e.g. for files it
// cannot interpret. Pass a no-op function to discard them.
type Logf func(format string, args ...any)

// schema reads one tagging scheme. Field methods report ok=false for absent
// fields so extraction can fall back per field, not per file.
type schema interface {
	AlbumArtist() (string, bool)
	Artist() (string, bool)
	Album() (string, bool)
	SortAlbumArtist() (string, bool)
	SortArtist() (string, bool)
	SortAlbum() (string, bool)
	Compilation() (bool, bool)
	PurchaserIDs() []string
	Covers() []Artwork
}

// Extractor reads SongFacts from audio files.
type Extractor struct {
	logf Logf
}

// NewExtractor creates an extractor that reports diagnostics through logf.
func NewExtractor(logf Logf) *Extractor {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Extractor{logf: logf}
}

// Extract reads the metadata facts for one file. It never fails: files that
// cannot be parsed, and files of unsupported type, come back as facts with
// Error set so one bad file cannot abort a scan.
func (e *Extractor) Extract(path string) *SongFacts {
	name := filepath.Base(path)
	facts := &SongFacts{
		FileName: name,
		FileType: Ext(name),
	}

	if !IsAudioFile(name) {
		e.logf("unsupported file type: %s", name)
		facts.Error = "unsupported file type " + facts.FileType
		return facts
	}

	readers, err := e.openSchemas(path)
	if err != nil {
		e.logf("could not read %q: %v", name, err)
		facts.Error = err.Error()
		return facts
	}

	facts.AlbumArtist, _ = firstString(readers, schema.AlbumArtist)
	facts.Artist, _ = firstString(readers, schema.Artist)
	facts.Album, _ = firstString(readers, schema.Album)
	facts.SortAlbumArtist, _ = firstString(readers, schema.SortAlbumArtist)
	facts.SortArtist, _ = firstString(readers, schema.SortArtist)
	facts.SortAlbum, _ = firstString(readers, schema.SortAlbum)

	for _, r := range readers {
		if v, ok := r.Compilation(); ok {
			facts.Compilation = v
			break
		}
	}

	// The first scheme that carries covers wins; the other is not consulted.
	for _, r := range readers {
		if covers := r.Covers(); len(covers) > 0 {
			facts.Covers = covers
			break
		}
	}

	for _, r := range readers {
		ids := r.PurchaserIDs()
		if len(ids) == 0 {
			continue
		}
		if len(ids) > 1 {
			// A file is shaped by exactly one store purchase. More than one
			// purchaser id means a file the extractor does not know how to
			// interpret; give up on this file, not the run.
			e.logf("multiple purchaser ids in %q", name)
			return &SongFacts{
				FileName: name,
				FileType: facts.FileType,
				Error:    "multiple purchaser ids",
			}
		}
		facts.PurchaseID = ids[0]
		break
	}

	return facts
}

// openSchemas probes the container and opens the schema readers that apply,
// atom scheme first. A file whose container cannot be opened is a recovered
// per-file failure, while a readable container without tags simply yields
// empty facts.
func (e *Extractor) openSchemas(path string) ([]schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil && !errors.Is(err, tag.ErrNoTagsFound) {
		return nil, err
	}

	format := tag.UnknownFormat
	if err == nil {
		format = m.Format()
	}

	switch {
	case format == tag.MP4:
		r, err := newAtomReader(path)
		if err != nil {
			return nil, err
		}
		return []schema{r}, nil
	case format != tag.UnknownFormat:
		// Every non-MP4 format we accept carries ID3 frames.
		r, err := newFrameReader(path)
		if err != nil {
			return nil, err
		}
		return []schema{r}, nil
	}

	// No tags found. Pick the scheme by extension so a stray parse error in
	// the container itself still surfaces.
	switch Ext(path) {
	case ExtM4A, ExtM4P:
		r, err := newAtomReader(path)
		if err != nil {
			return nil, err
		}
		return []schema{r}, nil
	default:
		r, err := newFrameReader(path)
		if err != nil {
			return nil, err
		}
		return []schema{r}, nil
	}
}

// firstString returns the first present value for a field across the
// schema readers, in fallback order.
func firstString(readers []schema, field func(schema) (string, bool)) (string, bool) {
	for _, r := range readers {
		if v, ok := field(r); ok {
			return v, true
		}
	}
	return "", false
}
