package mediasync

import (
	"fmt"
	"regexp"
	"strings"
)

// Wildcard disables filtering.
const Wildcard = "*"

// UploadFilter excludes paths matching a configured regular expression.
type UploadFilter struct {
	pattern string
	re      *regexp.Regexp
	err     error
}

// NewUploadFilter compiles pattern. Patterns may be given bare (".*\.tmp$")
// or delimited with trailing flags ("/\.tmp$/i"). A pattern that only looks
// delimited, such as "(\.tmp|\.bak)$", is compiled as a bare expression. A
// pattern that fails to compile either way never matches; Err reports why.
func NewUploadFilter(pattern string) *UploadFilter {
	f := &UploadFilter{pattern: pattern}
	if pattern == "" || pattern == Wildcard {
		return f
	}
	expr, err := translatePattern(pattern)
	if err == nil {
		f.re, err = regexp.Compile(expr)
	}
	if err != nil {
		if re, bareErr := regexp.Compile(pattern); bareErr == nil {
			f.re, err = re, nil
		}
	}
	f.err = err
	return f
}

// ShouldSkip reports whether path is excluded from sync.
func (f *UploadFilter) ShouldSkip(path string) bool {
	if f == nil || f.re == nil {
		return false
	}
	return f.re.MatchString(path)
}

// Err returns the compile error of a malformed pattern.
func (f *UploadFilter) Err() error {
	if f == nil {
		return nil
	}
	return f.err
}

var closingDelims = map[byte]byte{
	'/': '/', '#': '#', '~': '~', '@': '@', '%': '%', '|': '|', '!': '!', '+': '+',
	'(': ')', '[': ']', '{': '}', '<': '>',
}

// translatePattern converts a delimited pattern into Go syntax. Anything
// that does not look delimited is returned unchanged.
func translatePattern(pattern string) (string, error) {
	closing, ok := closingDelims[pattern[0]]
	if !ok {
		return pattern, nil
	}
	end := strings.LastIndexByte(pattern, closing)
	if end <= 0 {
		return pattern, nil
	}
	body, mods := pattern[1:end], pattern[end+1:]

	var flags strings.Builder
	for _, m := range mods {
		switch m {
		case 'i', 'm', 's', 'U':
			flags.WriteRune(m)
		case 'u', 'D':
			// UTF-8 matching and end-only $ are already Go's defaults
		default:
			return "", fmt.Errorf("unsupported pattern modifier %q", m)
		}
	}
	if flags.Len() == 0 {
		return body, nil
	}
	return "(?" + flags.String() + ")" + body, nil
}
