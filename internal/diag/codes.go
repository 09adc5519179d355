package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind with a stable numeric ID.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexInvalidUtf8        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnexpectedChar     Code = 1003

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexInvalidUtf8:        "Invalid UTF-8 sequence",
	LexUnterminatedString: "Unterminated string",
	LexUnexpectedChar:     "Unexpected character",
	IOLoadFileError:       "Failed to load file",
	ObsInfo:               "Observability information",
	ObsTimings:            "Phase timings",
}

// ID returns the stable string form, e.g. "LEX1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	default:
		return fmt.Sprintf("UNK%04d", ic)
	}
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
