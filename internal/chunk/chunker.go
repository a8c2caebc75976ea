// Package chunk splits oversized snippet text into bounded, headered parts.
//
// Splitting is greedy line accumulation: whole lines are packed into a part
// until the next line would overflow the per-part budget. Plain text and
// markdown share this scheme; markdown additionally tracks code-fence state
// so a part never leaves a fence ambiguously open across a boundary. Every
// part is prefixed with a "--- PART i/total ---" header, and part 1 may
// carry an instructional framing preamble for the receiving surface.
package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxChars bounds a part when the caller does not say otherwise.
	DefaultMaxChars = 6000

	// headerReserve is the rune budget set aside for the part header,
	// sized for the widest header maxParts allows:
	// "--- PART 9999/9999 ---\n".
	headerReserve = 23

	// maxParts is the largest part count the fixed header reserve covers.
	maxParts = 9999
)

// FramingMode selects the built-in part 1 preamble.
type FramingMode string

const (
	// FramingAck asks the receiving surface to confirm each part before
	// the next one is sent.
	FramingAck FramingMode = "ack"

	// FramingSilent asks the receiving surface to hold any response until
	// the final part has arrived.
	FramingSilent FramingMode = "silent"
)

var defaultFramingTexts = map[FramingMode]string{
	FramingAck:    "The following text arrives in numbered parts. Reply with OK after each part and wait for the next one.",
	FramingSilent: "The following text arrives in numbered parts. Do not respond until the final part has arrived.",
}

// Framing configures the optional instructional preamble injected after the
// header of part 1.
type Framing struct {
	Enabled bool
	Mode    FramingMode
	// Text overrides the mode's built-in preamble when non-empty.
	Text string
}

// resolveText returns the effective framing preamble.
func (f Framing) resolveText() (string, error) {
	if !f.Enabled {
		return "", nil
	}
	if f.Text != "" {
		return f.Text, nil
	}
	mode := f.Mode
	if mode == "" {
		mode = FramingAck
	}
	text, ok := defaultFramingTexts[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFramingMode, f.Mode)
	}

	return text, nil
}

// Options configures one [Split] call.
type Options struct {
	// MaxChars bounds every produced part in runes, header included.
	// Zero selects DefaultMaxChars.
	MaxChars int

	// ContentType picks the splitting algorithm; empty selects
	// ContentTypeAuto.
	ContentType ContentType

	// Framing configures the part 1 preamble.
	Framing Framing
}

// Split breaks text into parts of at most opts.MaxChars runes each.
//
// Concatenating the parts' content (headers and synthetic fence markers
// stripped) reproduces text exactly. The content budget is MaxChars minus a
// fixed header reserve, minus the framing preamble length when framing is
// enabled; the budget is computed once and applied to every part even though
// the preamble rides in part 1 only.
func Split(text string, opts Options) ([]string, error) {
	maxChars := opts.MaxChars
	if maxChars == 0 {
		maxChars = DefaultMaxChars
	}

	framingText, err := opts.Framing.resolveText()
	if err != nil {
		return nil, err
	}

	overhead := headerReserve
	if opts.Framing.Enabled {
		overhead += utf8.RuneCountInString(framingText) + 1
	}
	budget := maxChars - overhead
	if budget <= 0 {
		return nil, fmt.Errorf("%w: max %d runes, %d reserved", ErrMaxCharsTooSmall, maxChars, overhead)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeAuto
	}
	if contentType == ContentTypeAuto {
		contentType = DetectContentType(text)
	}

	lines := splitLinesKeepEnds(text)

	var contents []string
	switch contentType {
	case ContentTypeText:
		contents = accumulatePlain(lines, budget)
	case ContentTypeMarkdown:
		contents = accumulateMarkdown(lines, budget)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, opts.ContentType)
	}

	total := len(contents)
	if total > maxParts {
		return nil, fmt.Errorf("%w: %d", ErrTooManyParts, total)
	}

	parts := make([]string, total)
	for i, content := range contents {
		var b strings.Builder
		fmt.Fprintf(&b, "--- PART %d/%d ---\n", i+1, total)
		if i == 0 && opts.Framing.Enabled {
			b.WriteString(framingText)
			b.WriteByte('\n')
		}
		b.WriteString(content)
		parts[i] = b.String()
	}

	return parts, nil
}

// splitLinesKeepEnds splits text after every newline, keeping the
// terminators so concatenating the pieces reproduces text exactly.
func splitLinesKeepEnds(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return lines
}

// splitAfterRunes splits s after n runes.
func splitAfterRunes(s string, n int) (head, tail string) {
	for i := range s {
		if n == 0 {
			return s[:i], s[i:]
		}
		n--
	}

	return s, ""
}

// accumulatePlain greedily packs whole lines into chunks of at most budget
// runes. A line that alone exceeds the budget is hard-split at the budget
// boundary.
func accumulatePlain(lines []string, budget int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		chunks = append(chunks, cur.String())
		cur.Reset()
		curLen = 0
	}

	for _, line := range lines {
		lineLen := utf8.RuneCountInString(line)

		if lineLen > budget {
			if curLen > 0 {
				flush()
			}
			rest, restLen := line, lineLen
			for restLen > budget {
				head, tail := splitAfterRunes(rest, budget)
				cur.WriteString(head)
				curLen = budget
				flush()
				rest = tail
				restLen -= budget
			}
			cur.WriteString(rest)
			curLen = restLen
			continue
		}

		if curLen+lineLen > budget && curLen > 0 {
			flush()
		}
		cur.WriteString(line)
		curLen += lineLen
	}

	if curLen > 0 || len(chunks) == 0 {
		flush()
	}

	return chunks
}

// accumulateMarkdown packs lines like accumulatePlain but tracks code-fence
// state. A chunk that breaks while a fence is open gets a synthetic closing
// fence appended, and the following chunk starts with a synthetic reopening
// fence carrying the original delimiter run and info string. Fence toggle
// lines are never hard-split; an overlong toggle line is carried whole.
func accumulateMarkdown(lines []string, budget int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0
	baseLen := 0 // rune length of the synthetic reopener the chunk started with
	var st fenceState

	breakChunk := func() {
		content := cur.String()
		if st.open {
			// a mid-line break inside a fence needs its own newline so
			// the synthetic closer lands on a fresh line
			if !strings.HasSuffix(content, "\n") {
				content += "\n"
			}
			content += st.closer()
		}
		chunks = append(chunks, content)
		cur.Reset()
		curLen = 0
		baseLen = 0
		if st.open {
			cur.WriteString(st.reopener())
			curLen = st.reopenerLen()
			baseLen = curLen
		}
	}

	for _, line := range lines {
		next, toggled := st.consume(line)
		lineLen := utf8.RuneCountInString(line)

		// keep room for the closer a break right after this line would need
		reserve := 0
		if next.open {
			reserve = next.closerLen()
		}

		if curLen+lineLen+reserve > budget && curLen > baseLen {
			breakChunk()
		}

		if curLen+lineLen+reserve > budget && !toggled {
			// the line alone overflows a fresh chunk: hard-split it,
			// keeping every piece properly fenced; a break mid-line
			// costs one extra rune for the closer's leading newline
			breakReserve := 0
			if next.open {
				breakReserve = reserve + 1
			}
			pieceBudget := budget - curLen - breakReserve
			rest, restLen := line, lineLen
			for pieceBudget > 0 && restLen > pieceBudget {
				head, tail := splitAfterRunes(rest, pieceBudget)
				cur.WriteString(head)
				curLen += pieceBudget
				breakChunk()
				rest = tail
				restLen -= pieceBudget
				pieceBudget = budget - curLen - breakReserve
			}
			cur.WriteString(rest)
			curLen += restLen
		} else {
			cur.WriteString(line)
			curLen += lineLen
		}

		st = next
	}

	if curLen > baseLen || len(chunks) == 0 {
		// the text's own end is not a break: no synthetic closer
		chunks = append(chunks, cur.String())
	}

	return chunks
}
