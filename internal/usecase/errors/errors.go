package errors

import "errors"

// View errors
var (
	ErrNotMounted = errors.New("view is not mounted")
	ErrNoMeeting  = errors.New("no meeting loaded")
)

// Minutes errors
var (
	ErrMinutesNotLoaded = errors.New("minutes not loaded")
	ErrMinutesApproved  = errors.New("approved minutes cannot change")
	ErrNoRecipients     = errors.New("at least one recipient is required")
	ErrMinutesOffline   = errors.New("minutes were generated offline; regenerate them first")
)

// Task sync errors
var (
	ErrNoActionItems      = errors.New("no action items selected")
	ErrUnknownSyncTarget  = errors.New("unknown task sync target")
	ErrActionItemNotFound = errors.New("action item not found")
)

// Chat context errors
var (
	ErrEmptyQuestion = errors.New("question is empty")
)
