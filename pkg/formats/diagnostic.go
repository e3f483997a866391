package formats

import "fmt"

// DiagnosticKind classifies a non-fatal problem found while parsing.
type DiagnosticKind uint8

const (
	// KindResourceMissing means the resource was absent or empty.
	KindResourceMissing DiagnosticKind = iota + 1
	// KindRecordTruncated means input ended in the middle of a record.
	KindRecordTruncated
	// KindCountMismatch means the table did not hold exactly the expected number of records.
	KindCountMismatch
	// KindCapacityExceeded means records were left over after the table was full.
	KindCapacityExceeded
	// KindUnknownKeyword means a footsteps or movetype value was not recognised.
	KindUnknownKeyword
	// KindIndexOutOfRange means an animNum record pointed outside the table.
	KindIndexOutOfRange
	// KindUnknownRecord means an event record started with an unrecognised keyword.
	KindUnknownRecord
)

var diagnosticKindNames = map[DiagnosticKind]string{
	KindResourceMissing:  "resource_missing",
	KindRecordTruncated:  "record_truncated",
	KindCountMismatch:    "count_mismatch",
	KindCapacityExceeded: "capacity_exceeded",
	KindUnknownKeyword:   "unknown_keyword",
	KindIndexOutOfRange:  "index_out_of_range",
	KindUnknownRecord:    "unknown_record",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Diagnostic describes a non-fatal problem and where it was found.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int    // 0 when not tied to a line
	Token   string // offending token, if any
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}
