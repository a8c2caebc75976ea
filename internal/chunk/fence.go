// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package chunk

import (
	"strings"
	"unicode/utf8"
)

// fenceState tracks whether the text currently sits inside a markdown code
// fence and remembers enough of the opening fence to rebuild it across a
// chunk boundary.
type fenceState struct {
	open   bool
	delim  byte   // '`' or '~'
	length int    // delimiter run length of the opening fence
	info   string // info string of the opening fence, trimmed
}

// consume applies one line to the fence state and reports whether the line
// toggles it. Fence recognition is deliberately CommonMark-lite: up to three
// leading spaces, a run of at least three identical delimiters, and for a
// closing fence the same delimiter with a run at least as long and nothing
// but whitespace after it.
func (s fenceState) consume(line string) (fenceState, bool) {
	trimmed := strings.TrimRight(line, "\n")

	indent := 0
	for indent < len(trimmed) && indent < 3 && trimmed[indent] == ' ' {
		indent++
	}
	body := trimmed[indent:]
	if len(body) < 3 {
		return s, false
	}

	delim := body[0]
	if delim != '`' && delim != '~' {
		return s, false
	}
	run := 0
	for run < len(body) && body[run] == delim {
		run++
	}
	if run < 3 {
		return s, false
	}
	rest := body[run:]

	if !s.open {
		// backtick fence info strings cannot contain backticks
		if delim == '`' && strings.ContainsRune(rest, '`') {
			return s, false
		}
		return fenceState{open: true, delim: delim, length: run, info: strings.TrimSpace(rest)}, true
	}

	if delim == s.delim && run >= s.length && strings.TrimSpace(rest) == "" {
		return fenceState{}, true
	}

	// inside an open fence everything else is literal content
	return s, false
}

// closer returns the synthetic closing fence appended to a chunk that breaks
// while this fence is open.
func (s fenceState) closer() string {
	return strings.Repeat(string(s.delim), s.length) + "\n"
}

// closerLen returns the rune length of closer().
func (s fenceState) closerLen() int {
	return s.length + 1
}

// reopener returns the synthetic opening fence prepended to the chunk that
// follows a mid-fence break. It reuses the original delimiter run and info
// string so rendering continues unchanged.
func (s fenceState) reopener() string {
	line := strings.Repeat(string(s.delim), s.length) + s.info

	return line + "\n"
}

// reopenerLen returns the rune length of reopener().
func (s fenceState) reopenerLen() int {
	return s.length + utf8.RuneCountInString(s.info) + 1
}
