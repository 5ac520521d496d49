package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/notedhq/go-formkit/pkg/schema"
)

// rule is one named predicate applied to a field's normalized value. Rules
// run in the order they were appended during synthesis; the first failing
// rule supplies the field's error message.
type rule struct {
	name    string
	ok      func(value any) bool
	message string
}

func maxLengthRule(label string, limit int) rule {
	return rule{
		name:    "maxLength",
		ok:      func(v any) bool { return utf8.RuneCountInString(asString(v)) <= limit },
		message: fmt.Sprintf("%s must be at most %d characters", label, limit),
	}
}

func minLengthRule(label string, limit int) rule {
	return rule{
		name:    "minLength",
		ok:      func(v any) bool { return utf8.RuneCountInString(asString(v)) >= limit },
		message: fmt.Sprintf("%s must be at least %d characters", label, limit),
	}
}

// patternRule compiles expr eagerly. An expression that does not compile is
// skipped, matching how the rest of the pipeline treats malformed patterns.
func patternRule(label, expr string) (rule, bool) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return rule{}, false
	}
	return rule{
		name:    "pattern",
		ok:      func(v any) bool { return re.MatchString(asString(v)) },
		message: fmt.Sprintf("%s has an invalid format", label),
	}, true
}

func emailRule(label string) rule {
	return rule{
		name: "email",
		ok: func(v any) bool {
			_, err := mail.ParseAddress(asString(v))
			return err == nil
		},
		message: fmt.Sprintf("%s must be a valid email address", label),
	}
}

func urlRule(label string) rule {
	return rule{
		name:    "url",
		ok:      func(v any) bool { return validURL(asString(v)) },
		message: fmt.Sprintf("%s must be a valid URL", label),
	}
}

func minRule(label string, limit float64) rule {
	return rule{
		name: "min",
		ok: func(v any) bool {
			n, ok := asNumber(v)
			return ok && n >= limit
		},
		message: fmt.Sprintf("%s must be at least %v", label, limit),
	}
}

func maxRule(label string, limit float64) rule {
	return rule{
		name: "max",
		ok: func(v any) bool {
			n, ok := asNumber(v)
			return ok && n <= limit
		},
		message: fmt.Sprintf("%s must be at most %v", label, limit),
	}
}

func maxItemsRule(label string, limit int, noun string) rule {
	return rule{
		name:    "maxItems",
		ok:      func(v any) bool { return valueLen(v) <= limit },
		message: fmt.Sprintf("%s accepts at most %d %s", label, limit, noun),
	}
}

func linkURLRule(label string) rule {
	return rule{
		name: "linkURL",
		ok: func(v any) bool {
			links, ok := v.([]schema.Link)
			if !ok {
				return false
			}
			for _, link := range links {
				if !validURL(link.URL) {
					return false
				}
			}
			return true
		},
		message: fmt.Sprintf("%s entries need a valid URL", label),
	}
}

func imageURLRule(label string) rule {
	return rule{
		name: "imageURL",
		ok: func(v any) bool {
			images, ok := v.([]schema.Image)
			if !ok {
				return false
			}
			for _, image := range images {
				if !validURL(image.URL) {
					return false
				}
			}
			return true
		},
		message: fmt.Sprintf("%s entries need a valid URL", label),
	}
}

func validURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		return parsed, err == nil
	}
	return 0, false
}

func valueLen(value any) int {
	switch v := value.(type) {
	case []string:
		return len(v)
	case []schema.Link:
		return len(v)
	case []schema.Image:
		return len(v)
	case []any:
		return len(v)
	}
	return 0
}

func asDateString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	}
	return "", false
}
