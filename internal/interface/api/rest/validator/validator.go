package validator

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/supanut9/store-it/internal/domain/file"
	dto "github.com/supanut9/store-it/internal/interface/api/rest/dto/file"
	"github.com/supanut9/store-it/pkg/filetype"
)

const (
	maxNameLen   = 255
	maxLimit     = 100
	maxSearchLen = 256
	maxEmails    = 100
)

// ValidateListParams parses the query string of a listing. types is a comma
// separated list of categories.
func ValidateListParams(types, searchText, sort, limit string) (file.ListParams, error) {
	var p file.ListParams

	for _, raw := range strings.Split(types, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, ok := filetype.Parse(raw)
		if !ok {
			return p, fmt.Errorf("unknown file type %q", strings.TrimSpace(raw))
		}
		p.Types = append(p.Types, t)
	}

	p.SearchText = strings.TrimSpace(searchText)
	if utf8.RuneCountInString(p.SearchText) > maxSearchLen {
		return p, errors.New("searchText is too long")
	}
	p.Sort = strings.TrimSpace(sort)

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 || n > maxLimit {
			return p, fmt.Errorf("limit must be between 0 and %d", maxLimit)
		}
		p.Limit = n
	}

	return p, nil
}

func ValidateRename(r dto.RenameRequest) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(r.Name)
	ext := strings.TrimSpace(r.Extension)

	if name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(name)+utf8.RuneCountInString(ext)+1 > maxNameLen {
		errs["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLen)
	}
	if strings.ContainsAny(ext, "./\\") {
		errs["extension"] = "extension must not contain '.', '/' or '\\'"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NormalizeEmails trims and checks every address. Addresses are kept as
// supplied; exact duplicates are kept once, in their first position.
func NormalizeEmails(emails []string) ([]string, map[string]string) {
	if len(emails) > maxEmails {
		return nil, map[string]string{"emails": fmt.Sprintf("at most %d emails", maxEmails)}
	}

	out := make([]string, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))
	for i, raw := range emails {
		email := strings.TrimSpace(raw)
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return nil, map[string]string{fmt.Sprintf("emails[%d]", i): "invalid email format"}
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out, nil
}
