package parser

import "net/url"

// AbsoluteURL resolves href against base. Returns "" when either side is
// unparsable; callers drop such links instead of propagating an error.
func AbsoluteURL(href, base string) string {
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}

// cleanImageURL strips query parameters and fragment from an image URL,
// keeping scheme, host and path. Unparsable input is returned as-is.
func cleanImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.Path
}
