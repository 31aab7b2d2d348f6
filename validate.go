package titlefill

import (
	"net/url"
	"strings"
)

// RawInput is unvalidated settings input keyed by field name. A missing key
// means the field was not submitted at all.
type RawInput map[string]string

// Validator turns raw settings input into a well-formed Options record.
type Validator func(RawInput) Options

const (
	fieldTitleFormat    = "title_format"
	fieldNotEmptyTitles = "not_empty_titles"
)

// Validate sanitizes title_format through the title allowlist and coerces
// not_empty_titles from checkbox semantics: absent, empty, "0" and "false"
// mean false, anything else means true. It never fails.
func Validate(in RawInput) Options {
	opts := Options{
		TitleFormat: SanitizeTitleFormat(in[fieldTitleFormat]),
	}
	if v, ok := in[fieldNotEmptyTitles]; ok {
		opts.NotEmptyTitles = checkboxValue(v)
	}
	return opts
}

func checkboxValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false":
		return false
	}
	return true
}

// RawInputFromForm extracts the fields posted as key[field] for the given
// option key, the naming the settings page uses for its inputs.
func RawInputFromForm(form url.Values, key string) RawInput {
	in := RawInput{}
	prefix := key + "["
	for name, vals := range form {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") || len(vals) == 0 {
			continue
		}
		field := strings.TrimSuffix(strings.TrimPrefix(name, prefix), "]")
		in[field] = vals[0]
	}
	return in
}

// FieldName returns the form input name for field under the option key.
func FieldName(key, field string) string {
	return key + "[" + field + "]"
}
