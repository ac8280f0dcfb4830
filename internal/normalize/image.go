package normalize

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ImagesDir is the site-relative directory local product images live in.
const ImagesDir = "img/"

var drivePath = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// NormalizeImagePath turns an image source into something safe to persist.
// Local filesystem paths keep only their file name under ImagesDir, sources on
// the page's own origin become origin-relative, anything else is kept as is.
// An empty source yields nil.
func NormalizeImagePath(src string, page *url.URL) *string {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}

	if strings.HasPrefix(strings.ToLower(src), "file:") || drivePath.MatchString(src) {
		return ptr(ImagesDir + baseName(src))
	}

	u, err := url.Parse(src)
	if err != nil {
		return ptr(src)
	}
	if page != nil {
		u = page.ResolveReference(u)
	}
	if u.Scheme == "file" {
		return ptr(ImagesDir + path.Base(u.Path))
	}
	if page != nil && u.Host != "" && sameOrigin(u, page) {
		return ptr(strings.TrimLeft(u.EscapedPath(), "/"))
	}
	return ptr(src)
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

func baseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func ptr(s string) *string { return &s }
