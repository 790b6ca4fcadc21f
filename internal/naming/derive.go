package naming

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Output naming constants
const (
	OutputExtension = ".png"
	FallbackStem    = "converted_image"
	FallbackName    = FallbackStem + OutputExtension

	// MaxStemBytes keeps derived names inside the usual 255-byte filename limit
	// with room for a numeric suffix and the extension.
	MaxStemBytes = 200
)

// ReservedStems are generic names that say nothing about the image.
var ReservedStems = []string{"index", "image", "download"}

// Derive maps a URL to a candidate PNG filename. It never fails and never
// returns a name containing a path separator.
func Derive(rawURL string) (name string) {
	defer func() {
		if recover() != nil {
			name = FallbackName
		}
	}()

	u, err := url.Parse(rawURL)
	if err != nil {
		return FallbackName
	}

	stem := stripExtension(lastSegment(rawPath(u)))
	if stem == "" || isReserved(stem) {
		stem = queryStem(u.RawQuery)
	}

	stem = sanitize(stem)
	if stem == "" {
		stem = FallbackStem
	}
	return truncateStem(stem) + OutputExtension
}

// rawPath is the path as written in the URL. Percent escapes stay literal so
// an encoded slash never splits a segment.
func rawPath(u *url.URL) string {
	if u.RawPath != "" {
		return u.RawPath
	}
	return u.EscapedPath()
}

// lastSegment returns the text after the last '/', or the last non-empty
// segment when the path ends with a slash.
func lastSegment(p string) string {
	base := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		base = p[i+1:]
	}
	if base == "" && p != "" {
		trimmed := strings.Trim(p, "/")
		base = path.Base("/" + trimmed)
		if base == "/" {
			base = ""
		}
	}
	return base
}

// stripExtension removes the final ".ext". Leading dots do not start an extension.
func stripExtension(name string) string {
	body := strings.TrimLeft(name, ".")
	i := strings.LastIndex(body, ".")
	if i <= 0 {
		return name
	}
	return name[:len(name)-len(body)+i]
}

func isReserved(stem string) bool {
	for _, r := range ReservedStems {
		if stem == r {
			return true
		}
	}
	return false
}

// queryStem builds "key_value" from the first query parameter that has a
// non-empty value, or returns FallbackStem. Malformed escapes are kept as written.
func queryStem(rawQuery string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		k, v := unescapeQuery(key), unescapeQuery(value)
		if k == "" || v == "" {
			continue
		}
		return k + "_" + v
	}
	return FallbackStem
}

func unescapeQuery(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

func truncateStem(stem string) string {
	if len(stem) <= MaxStemBytes {
		return stem
	}
	cut := MaxStemBytes
	for cut > 0 && !utf8.RuneStart(stem[cut]) {
		cut--
	}
	return stem[:cut]
}
