package driver

// Stage identifies a pipeline phase for progress reporting.
type Stage uint8

const (
	StageParse Stage = iota
	StageLink
	StageCheck
	StageLower
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageLink:
		return "link"
	case StageCheck:
		return "check"
	case StageLower:
		return "lower"
	case StageEmit:
		return "emit"
	}
	return "unknown"
}

// Status is the state of a stage or work item.
type Status uint8

const (
	StatusRunning Status = iota
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return "running"
}

// Event is one progress notification. Path is set for per-file work; Done
// and Total track progress within the stage.
type Event struct {
	Stage  Stage
	Status Status
	Path   string
	Done   int
	Total  int
}

// Sink receives progress events. Sinks must be fast; slow consumers should
// buffer on their side.
type Sink func(Event)

func (s Sink) publish(e Event) {
	if s != nil {
		s(e)
	}
}
