package fusion

import (
	"strings"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// Blank is the placeholder emitted for a word that cannot be recovered.
const Blank = ""

// Fuser recovers a message from three right-aligned copies. The copies are
// passed in beacon identity order, which is also the tie-break order.
//
// The zero value departs from the legacy scan on purpose: it inspects every
// index, including 0, and votes over the full length of the longest copy
// that carries a word. Three identical copies therefore decode to
// themselves, trailing blanks included. SkipLeadingWord selects the legacy
// behavior.
type Fuser struct {
	// SkipLeadingWord restores the legacy anchor scan: index 0 of each copy
	// is never inspected and the window is the highest anchor index itself,
	// which drops the first word of a fully populated message.
	SkipLeadingWord bool
}

// Decode reconstructs the message carried by the three copies. Position k of
// the result, counted from the right, is voted on using the k-th word from
// the end of each copy.
//
// Parameters:
//   - a, b, c: The message copies in beacon identity order.
//
// Returns:
//   - []string: The recovered words; unrecoverable positions hold Blank.
//   - error: apperrors.NoMessageError if no word can be recovered.
func (f Fuser) Decode(a, b, c []string) ([]string, error) {
	copies := [3][]string{a, b, c}

	window := f.window(copies)
	if window <= 0 {
		return nil, apperrors.NoMessageError{}
	}

	message := make([]string, 0, window)
	for offset := window - 1; offset >= 0; offset-- {
		var votes [3]string
		for i, words := range copies {
			votes[i] = fromRight(words, offset)
		}
		message = append(message, majority(votes))
	}
	if len(message) == 0 {
		return nil, apperrors.NoMessageError{}
	}
	return message, nil
}

// window returns the number of right-aligned positions to vote on, or a
// value below one when no copy carries a word.
func (f Fuser) window(copies [3][]string) int {
	if f.SkipLeadingWord {
		highest := -1
		for _, words := range copies {
			highest = max(highest, anchor(words, 1))
		}
		return highest
	}

	longest := 0
	for _, words := range copies {
		if anchor(words, 0) >= 0 {
			longest = max(longest, len(words))
		}
	}
	return longest
}

// anchor returns the highest index at or above from whose trimmed word is not
// empty, or -1.
func anchor(words []string, from int) int {
	for i := len(words) - 1; i >= from; i-- {
		if strings.TrimSpace(words[i]) != "" {
			return i
		}
	}
	return -1
}

// fromRight returns the trimmed word offset positions before the end of words.
// Positions before the start of a shorter copy read as blank.
func fromRight(words []string, offset int) string {
	i := len(words) - 1 - offset
	if i < 0 {
		return Blank
	}
	return strings.TrimSpace(words[i])
}

// majority picks the value of one position. Three distinct values give Blank;
// otherwise the non-blank value with the most votes wins and ties go to the
// earliest copy.
func majority(votes [3]string) string {
	if votes[0] != votes[1] && votes[1] != votes[2] && votes[0] != votes[2] {
		return Blank
	}

	best, bestCount := Blank, 0
	for i, v := range votes {
		if v == Blank {
			continue
		}
		count := 0
		for _, w := range votes {
			if w == v {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = votes[i], count
		}
	}
	return best
}
