package patch

import (
    "errors"
    "fmt"
    "regexp"
)

// ErrAnchor means a textual edit could not be applied unambiguously. Zero
// matches and multiple matches are treated the same: the file no longer looks
// like the edit expects, so nothing is written.
var ErrAnchor = errors.New("edit anchor did not match exactly once")

func matchOne(content string, re *regexp.Regexp) []int {
    locs := re.FindAllStringIndex(content, -1)
    if len(locs) != 1 { return nil }
    return locs[0]
}

// insertAfter inserts text on a new line after the single line matched by
// anchor (a (?m)^...$ pattern).
func insertAfter(content string, anchor *regexp.Regexp, text string) (string, error) {
    loc := matchOne(content, anchor)
    if loc == nil {
        return "", fmt.Errorf("%w: %s", ErrAnchor, anchor)
    }
    end := loc[1]
    return content[:end] + "\n" + text + content[end:], nil
}

// replaceLine replaces the single line matched by anchor with text.
func replaceLine(content string, anchor *regexp.Regexp, text string) (string, error) {
    loc := matchOne(content, anchor)
    if loc == nil {
        return "", fmt.Errorf("%w: %s", ErrAnchor, anchor)
    }
    return content[:loc[0]] + text + content[loc[1]:], nil
}
