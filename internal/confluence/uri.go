package confluence

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// BuildURI returns https://{domain}.atlassian.net{prefix}{suffix}. Leading
// slashes on suffix are ignored. Query content already in suffix is kept and
// query entries are appended after it.
func BuildURI(domain string, version APIVersion, suffix string, query map[string]string) (*url.URL, error) {
	prefix, err := version.Prefix()
	if err != nil {
		return nil, err
	}

	path, rawQuery, _ := strings.Cut(strings.TrimLeft(suffix, "/"), "?")

	u, err := url.Parse(fmt.Sprintf("https://%s.atlassian.net%s%s", domain, prefix, path))
	if err != nil {
		return nil, fmt.Errorf("confluence: build uri: %w", err)
	}

	u.RawQuery = appendQuery(rawQuery, query)
	return u, nil
}

func appendQuery(existing string, query map[string]string) string {
	if len(query) == 0 {
		return existing
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(existing)
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(query[k]))
	}
	return b.String()
}
