package model

// Source tags where an opportunity came from.
// Keep these values stable; they are intended for CSV output.
type Source string

const (
	SourceAuto   Source = "auto"
	SourceManual Source = "manual"
)

// SourceFromTag maps a backend provenance tag to a Source. Unknown or empty
// tags are treated as system-generated.
func SourceFromTag(tag string) Source {
	switch Source(tag) {
	case SourceManual:
		return SourceManual
	default:
		return SourceAuto
	}
}
