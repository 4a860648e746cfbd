// Package naming derives the identifiers shared by scaffolding and checking.
// Both sides must call the same Strategy so that a freshly scaffolded file
// always checks clean.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the default identifier length limit, in runes
	DefaultMaxLength = 64
	// DefaultPlaceholder names scopes whose description normalizes to nothing
	DefaultPlaceholder = "unnamed"
	// DefaultReservedPrefix escapes identifiers that clash with Go keywords
	DefaultReservedPrefix = "x_"
	// MaxDisambiguator bounds the numeric suffix tried on sibling collisions
	MaxDisambiguator = 9999
)

// Strategy turns descriptions into identifiers
type Strategy struct {
	MaxLength      int
	StripPrefixes  bool
	Placeholder    string
	ReservedPrefix string
}

// Default returns the strategy used when nothing is configured
func Default() Strategy {
	return Strategy{
		MaxLength:      DefaultMaxLength,
		StripPrefixes:  false,
		Placeholder:    DefaultPlaceholder,
		ReservedPrefix: DefaultReservedPrefix,
	}
}

// bddPrefixes are the leading keywords dropped when StripPrefixes is set
var bddPrefixes = []string{"when ", "given ", "it "}

// Identifier maps a description and its position among siblings to an
// identifier, without regard to collisions
func (s Strategy) Identifier(description string, siblingIndex int) string {
	s = s.withDefaults()

	text := strings.TrimSpace(description)
	if s.StripPrefixes {
		text = stripPrefix(text)
	}

	id := s.truncate(normalize(text), s.MaxLength)
	if id == "" {
		suffix := "_" + strconv.Itoa(siblingIndex+1)
		return s.truncate(s.Placeholder, s.MaxLength-utf8.RuneCountInString(suffix)) + suffix
	}

	if isReserved(id) || startsWithDigit(id) {
		id = s.truncate(s.ReservedPrefix+id, s.MaxLength)
	}

	return id
}

// Siblings assigns identifiers to an ordered list of sibling descriptions.
// A collision with an earlier sibling gets the smallest free numeric suffix,
// so the result depends only on the descriptions and their order. No returned
// identifier is longer than MaxLength; a limit too small to fit a suffix is
// an error.
func (s Strategy) Siblings(descriptions []string) ([]string, error) {
	s = s.withDefaults()

	ids := make([]string, len(descriptions))
	taken := make(map[string]bool, len(descriptions))

	for i, description := range descriptions {
		base := s.Identifier(description, i)
		id := base
		for n := 2; taken[id]; n++ {
			if n > MaxDisambiguator {
				return nil, fmt.Errorf("cannot disambiguate %q after %d attempts", base, MaxDisambiguator)
			}
			suffix := "_" + strconv.Itoa(n)
			room := s.MaxLength - utf8.RuneCountInString(suffix)
			if room < 1 {
				return nil, fmt.Errorf("length limit %d leaves no room to disambiguate %q", s.MaxLength, base)
			}
			id = s.truncate(base, room) + suffix
		}
		if utf8.RuneCountInString(id) > s.MaxLength {
			return nil, fmt.Errorf("identifier %q exceeds the length limit %d", id, s.MaxLength)
		}
		taken[id] = true
		ids[i] = id
	}

	return ids, nil
}

// IsIdentifier reports whether s could have been produced by a Strategy
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case unicode.IsLetter(r) && !unicode.IsUpper(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

func (s Strategy) withDefaults() Strategy {
	if s.MaxLength <= 0 {
		s.MaxLength = DefaultMaxLength
	}
	if s.Placeholder == "" {
		s.Placeholder = DefaultPlaceholder
	}
	if s.ReservedPrefix == "" {
		s.ReservedPrefix = DefaultReservedPrefix
	}
	return s
}

// truncate cuts id to at most limit runes and drops any trailing separator
func (s Strategy) truncate(id string, limit int) string {
	if limit < 1 {
		limit = 1
	}
	if utf8.RuneCountInString(id) > limit {
		id = string([]rune(id)[:limit])
	}
	return strings.TrimRight(id, "_")
}

func stripPrefix(text string) string {
	lower := strings.ToLower(text)
	for _, prefix := range bddPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}
	return text
}

// normalize splits camel case, folds case, drops apostrophes and collapses
// every other run of non-alphanumerics into a single underscore
func normalize(text string) string {
	var b strings.Builder
	var prev rune
	pendingSeparator := false

	for _, r := range text {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
				pendingSeparator = true
			}
			if pendingSeparator && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSeparator = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSeparator = true
		}
		prev = r
	}

	return b.String()
}

func startsWithDigit(id string) bool {
	r, _ := utf8.DecodeRuneInString(id)
	return unicode.IsDigit(r)
}
