package library

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sorenlind/preservationist/internal/tags"
)

// DefaultWorkers is the album worker count used when none is configured.
const DefaultWorkers = 8

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase         string // "discovering", "classifying", "done"
	Current       int
	Total         int
	CurrentFolder string
}

// Scanner walks a library root and classifies every album in it.
type Scanner struct {
	extractor *tags.Extractor
	workers   int
}

// NewScanner creates a scanner that extracts facts with the given extractor.
// workers <= 0 selects DefaultWorkers.
func NewScanner(extractor *tags.Extractor, workers int) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{extractor: extractor, workers: workers}
}

// Scan discovers the album folders under root and classifies each of them.
// Albums are processed in parallel but the result keeps the deterministic
// discovery order, so repeated runs over the same tree produce identical
// reports. The progress channel is closed when the scan finishes.
func (s *Scanner) Scan(root string, progress chan<- ScanProgress) ([]*Album, error) {
	if progress == nil {
		drain := make(chan ScanProgress)
		go func() {
			for range drain {
			}
		}()
		progress = drain
	}
	defer close(progress)

	progress <- ScanProgress{Phase: "discovering"}
	folders, err := Discover(root)
	if err != nil {
		return nil, err
	}

	total := len(folders)
	albums := make([]*Album, total)
	var processed atomic.Int64

	workCh := make(chan int, total)

	var wg sync.WaitGroup
	for range s.workers {
		wg.Go(func() {
			for i := range workCh {
				albums[i] = s.buildAlbum(folders[i])
				processed.Add(1)
			}
		})
	}

	go func() {
		for i := range folders {
			workCh <- i
		}
		close(workCh)
	}()

	// Progress reporter, decoupled from the workers so a slow consumer
	// cannot stall the scan. The handshake below guarantees no tick is
	// sent after the final "done" message.
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				progress <- ScanProgress{
					Phase:   "classifying",
					Current: int(processed.Load()),
					Total:   total,
				}
			}
		}
	}()

	wg.Wait()
	close(done)
	<-reporterDone

	progress <- ScanProgress{Phase: "done", Current: total, Total: total}
	return albums, nil
}

// buildAlbum extracts the facts for every file of the folder and aggregates
// them. File order within the folder is already sorted by discovery.
func (s *Scanner) buildAlbum(f Folder) *Album {
	facts := make([]*tags.SongFacts, 0, len(f.Files))
	for _, name := range f.Files {
		facts = append(facts, s.extractor.Extract(filepath.Join(f.Path, name)))
	}
	return NewAlbum(f.Artist, f.Album, facts)
}
