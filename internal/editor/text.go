// ABOUTME: Word and line boundary helpers over rune slices
// ABOUTME: Words are runs of letters and digits, as in Emacs text mode

package editor

import "unicode"

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ForwardWord returns the offset after the end of the next word.
func ForwardWord(text []rune, pos int) int {
	pos = max(0, min(pos, len(text)))
	for pos < len(text) && !isWord(text[pos]) {
		pos++
	}
	for pos < len(text) && isWord(text[pos]) {
		pos++
	}
	return pos
}

// BackwardWord returns the offset of the start of the previous word.
func BackwardWord(text []rune, pos int) int {
	pos = max(0, min(pos, len(text)))
	for pos > 0 && !isWord(text[pos-1]) {
		pos--
	}
	for pos > 0 && isWord(text[pos-1]) {
		pos--
	}
	return pos
}

// LineStart returns the offset of the first rune of the line holding pos.
func LineStart(text []rune, pos int) int {
	pos = max(0, min(pos, len(text)))
	for pos > 0 && text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEnd returns the offset of the newline ending the line holding pos,
// or the end of text.
func LineEnd(text []rune, pos int) int {
	pos = max(0, min(pos, len(text)))
	for pos < len(text) && text[pos] != '\n' {
		pos++
	}
	return pos
}

// KillLineEnd returns where kill-line starting at pos stops. Without an
// argument it kills to the end of the line, or just the newline when pos
// is already there. With a positive count n it kills through n newlines.
func KillLineEnd(text []rune, pos, n int, hasArg bool) int {
	pos = max(0, min(pos, len(text)))
	if !hasArg {
		end := LineEnd(text, pos)
		if end == pos && end < len(text) {
			return end + 1
		}
		return end
	}
	end := pos
	for ; n > 0 && end < len(text); n-- {
		end = LineEnd(text, end)
		if end < len(text) {
			end++
		}
	}
	return end
}
