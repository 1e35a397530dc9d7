package extract

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// EventKind tells what a ProgressEvent reports.
type EventKind int

const (
	// EventMessage carries only a message.
	EventMessage EventKind = iota

	// EventFileStart is sent once a file is decoded; Total is its frame count.
	EventFileStart

	// EventFrame is sent after each frame file is written; Done counts frames written so far.
	EventFrame

	// EventFileDone is sent when a file is finished, successfully or not.
	EventFileDone
)

// ProgressEvent represents an extraction progress update.
type ProgressEvent struct {
	Kind    EventKind
	Level   ProgressLevel
	Message string

	// File is the display name of the source file, if any.
	File string

	Done  int
	Total int
}
