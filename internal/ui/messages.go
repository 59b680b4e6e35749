// Package ui provides the Bubble Tea TUI for the daily briefing.
package ui

import "github.com/abelbrown/briefing/internal/model"

// BriefingFetched is sent when a gateway call finishes.
// Gen is the fetch generation the call was started with.
type BriefingFetched struct {
	Gen    int
	Topic  string
	Result model.NewsResult
	Err    error
}

// BriefingSaved is sent after a save attempt. Saved is the full list after
// the attempt.
type BriefingSaved struct {
	Article model.SavedArticle
	Added   bool
	Saved   []model.SavedArticle
	Err     error
}

// BriefingDeleted is sent after a delete attempt.
type BriefingDeleted struct {
	ID      string
	Removed bool
	Saved   []model.SavedArticle
	Err     error
}
