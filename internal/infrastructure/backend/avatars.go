package backend

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const RouteInitials = "/avatars/initials"

type Avatars struct {
	endpoint string
	project  string
}

// GetInitials returns the URL of an initials avatar for name.
func (a *Avatars) GetInitials(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("project", a.project)
	return a.endpoint + RouteInitials + "?" + q.Encode()
}

// Initials takes the first letter of the first two words of name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}
