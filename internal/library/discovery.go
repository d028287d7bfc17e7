package library

import (
	"os"
	"path/filepath"
	"strings"
)

// Folder is one leaf folder of the library tree, assumed to hold a single
// album. Artist and Album are the last two path segments; Files is the
// sorted list of visible file names.
type Folder struct {
	Path   string
	Artist string
	Album  string
	Files  []string
}

// Discover walks root and returns every album folder in sorted order.
// A folder counts as an album when it has no subdirectories, except that
// iTunes LP bundles (.itlp) are ignored both as subdirectories and as
// folders of their own. Hidden files are ignored.
func Discover(root string) ([]Folder, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var folders []Folder
	if err := discover(abs, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func discover(dir string, folders *[]Folder) error {
	if isITunesLP(dir) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs, files []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			subdirs = append(subdirs, e.Name())
		case !strings.HasPrefix(e.Name(), "."):
			files = append(files, e.Name())
		}
	}

	// A folder with real subdirectories is an intermediate level, not an
	// album. iTunes LP bundles don't count against that.
	isAlbum := true
	for _, name := range subdirs {
		if !isITunesLP(name) {
			isAlbum = false
			break
		}
	}

	if isAlbum {
		artist, album := folderIdentity(dir)
		*folders = append(*folders, Folder{
			Path:   dir,
			Artist: artist,
			Album:  album,
			Files:  files,
		})
	}

	// os.ReadDir sorts by name, so recursion keeps the output deterministic.
	for _, name := range subdirs {
		if err := discover(filepath.Join(dir, name), folders); err != nil {
			return err
		}
	}
	return nil
}

// folderIdentity derives the artist/album pair from the last two path
// segments of an album folder.
func folderIdentity(dir string) (artist, album string) {
	album = filepath.Base(dir)
	artist = filepath.Base(filepath.Dir(dir))
	if artist == string(filepath.Separator) || artist == "." {
		artist = ""
	}
	return artist, album
}

func isITunesLP(name string) bool {
	return strings.Contains(name, ".itlp")
}
