package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSurvivorRecord BookmarkType = "survivor_record"
	BookmarkSurvivorCrash  BookmarkType = "survivor_crash"
	BookmarkMovementSurge  BookmarkType = "movement_surge"
	BookmarkPlateau        BookmarkType = "plateau"
)

// Bookmark thresholds.
const (
	crashDrop        = 0.30  // fraction lost from the recent peak
	surgeFactor      = 2.0   // moved count versus rolling mean
	plateauStd       = 0.01  // survivor fraction standard deviation
	plateauMinWindow = 5     // generations before a plateau can trigger
	recordMargin     = 0.005 // improvement needed over the best so far
)

// Bookmark marks a generation worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches generation stats for notable changes.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	best      float64 // best survivor fraction seen
	onPlateau bool    // suppresses repeated plateau bookmarks
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < plateauMinWindow {
		historySize = plateauMinWindow
	}
	return &BookmarkDetector{
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(GenerationStats) *Bookmark{
			bd.checkRecord,
			bd.checkCrash,
			bd.checkMovementSurge,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)
	bd.best = max(bd.best, stats.SurvivorFraction)

	if b := bd.checkPlateau(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []GenerationStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) fractions() []float64 {
	h := bd.getHistory()
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = s.SurvivorFraction
	}
	return out
}

func (bd *BookmarkDetector) checkRecord(stats GenerationStats) *Bookmark {
	if stats.SurvivorFraction <= bd.best+recordMargin {
		return nil
	}
	return &Bookmark{
		Type:       BookmarkSurvivorRecord,
		Generation: stats.Generation,
		Description: fmt.Sprintf("survivor fraction %.3f beats previous best %.3f",
			stats.SurvivorFraction, bd.best),
	}
}

func (bd *BookmarkDetector) checkCrash(stats GenerationStats) *Bookmark {
	var peak float64
	for _, f := range bd.fractions() {
		peak = max(peak, f)
	}
	if peak == 0 || stats.SurvivorFraction >= peak*(1-crashDrop) {
		return nil
	}
	return &Bookmark{
		Type:       BookmarkSurvivorCrash,
		Generation: stats.Generation,
		Description: fmt.Sprintf("survivor fraction fell to %.3f from recent peak %.3f",
			stats.SurvivorFraction, peak),
	}
}

func (bd *BookmarkDetector) checkMovementSurge(stats GenerationStats) *Bookmark {
	h := bd.getHistory()
	moved := make([]float64, len(h))
	for i, s := range h {
		moved[i] = float64(s.Moved)
	}
	mean := stat.Mean(moved, nil)
	if mean <= 0 || float64(stats.Moved) < surgeFactor*mean {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkMovementSurge,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("%d moves against a rolling mean of %.0f", stats.Moved, mean),
	}
}

// checkPlateau runs after the current stats joined the history.
func (bd *BookmarkDetector) checkPlateau(stats GenerationStats) *Bookmark {
	f := bd.fractions()
	if len(f) < plateauMinWindow {
		return nil
	}
	std := stat.StdDev(f, nil)
	if std >= plateauStd {
		bd.onPlateau = false
		return nil
	}
	if bd.onPlateau {
		return nil
	}
	bd.onPlateau = true
	return &Bookmark{
		Type:       BookmarkPlateau,
		Generation: stats.Generation,
		Description: fmt.Sprintf("survivor fraction steady at %.3f (std %.4f over %d generations)",
			stat.Mean(f, nil), std, len(f)),
	}
}
