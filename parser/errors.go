package parser

import "errors"

// errNoMatch is returned internally by a withDepth body to signal "this
// alternative did not match" without being a real parse error — the
// caller always responds by restoring the cursor and falling back to
// the next alternative (spec §4.6).
var errNoMatch = errors.New("no match")
