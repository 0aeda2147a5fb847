package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindError is emitted for failures and passes every level but off.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeBuild    Scope = iota + 1 // одна команда CLI
	ScopeFile                      // компиляция одного файла
	ScopePhase                     // lex, parse, check, emit, write
	ScopeFunction                  // тело одной функции
)

func (s Scope) String() string {
	switch s {
	case ScopeBuild:
		return "build"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	case ScopeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64 // goroutine, distinguishes parallel files
	Depth    int
	Name     string // "build", "file:prog.c0", "parse", "fn:main"
	Detail   string
	Extra    map[string]string
}
