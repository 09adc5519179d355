package lexer

import (
	"wisp/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives a diagnostic for every lexer failure before Next
	// returns it. May be nil — errors are then only returned, not reported.
	Reporter diag.Reporter
}
