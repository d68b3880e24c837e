package employee

import "strings"

const (
	DefaultCodePrefix = "RGL"

	// MaxCodeLength bounds the code without its prefix.
	MaxCodeLength = 10
	// MaxPrefixLength keeps "<PREFIX>/<CODE>" within the 20 character column.
	MaxPrefixLength = 9
)

// CodeFormatter normalizes employee ID codes to "<PREFIX>/<CODE>".
type CodeFormatter struct {
	prefix string
}

// NewCodeFormatter uppercases prefix and cuts it to MaxPrefixLength.
func NewCodeFormatter(prefix string) CodeFormatter {
	prefix = strings.ToUpper(strings.Trim(strings.TrimSpace(prefix), "/"))
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	if len(prefix) > MaxPrefixLength {
		prefix = prefix[:MaxPrefixLength]
	}
	return CodeFormatter{prefix: prefix}
}

// Bare returns the normalized code without the prefix, so a formatted code and
// its raw form yield the same value.
func (f CodeFormatter) Bare(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	code = strings.TrimPrefix(code, f.prefix+"/")
	code = strings.ReplaceAll(code, "/", "")
	return strings.TrimSpace(code)
}

// Format is idempotent: formatting an already formatted code returns it unchanged.
// Empty input stays empty.
func (f CodeFormatter) Format(raw string) string {
	code := f.Bare(raw)
	if code == "" {
		return ""
	}
	return f.prefix + "/" + code
}

func (f CodeFormatter) formatPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	code := f.Format(*raw)
	if code == "" {
		return nil
	}
	return &code
}
