// Package crawl resolves what to convert: the file key behind a Figma link
// and the pages of a fetched document, each with a unique output slug.
package crawl

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/designpipe/core/errors"
)

var (
	bareKey = regexp.MustCompile(`^[A-Za-z0-9]{20,40}$`)
	urlKey  = regexp.MustCompile(`/(?:file|design)/([A-Za-z0-9]+)/`)
)

// ExtractFileKey accepts either a bare file key or a Figma file/design URL
// and returns the key.
func ExtractFileKey(input string) (string, error) {
	input = strings.TrimSpace(input)
	if bareKey.MatchString(input) {
		return input, nil
	}
	if m := urlKey.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid Figma key/URL: %q", input)
}

// IsSeparatorPage reports whether a page name is purely decorative, like the
// "-----" dividers designers put between page groups.
func IsSeparatorPage(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return strings.Trim(name, "-_=*~ ") == ""
}
