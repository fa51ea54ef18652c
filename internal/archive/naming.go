package archive

import "strings"

const (
	fallbackBaseName = "index"
	fallbackDirName  = "crawl"
	rootURLPrefix    = "https://www."
)

// DeriveBaseName returns the file stem used for a crawled document.
//
// The stem is the final path segment of the URL, as written (percent escapes
// are kept), with everything from the first "." onward removed:
//
//	https://ex.com/a/report.pdf      -> report
//	https://ex.com/page              -> page
//	https://ex.com/a/b.tar.gz        -> b
//	https://ex.com/a/My%20Manual.pdf -> My%20Manual
//	https://ex.com/docs/             -> docs   (trailing slashes are ignored)
//	https://ex.com/a/x.pdf?dl=1#p2   -> x      (query and fragment are ignored)
//	https://ex.com                   -> index  (nothing left)
func DeriveBaseName(rawURL string) string {
	path := rawPath(rawURL)

	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.Index(path, "."); i >= 0 {
		path = path[:i]
	}

	if path == "" {
		return fallbackBaseName
	}
	return path
}

// rawPath returns the undecoded path of rawURL without scheme, host, query or fragment
func rawPath(rawURL string) string {
	s, _, _ := strings.Cut(rawURL, "#")
	s, _, _ = strings.Cut(s, "?")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+len("://"):]
		j := strings.Index(s, "/")
		if j < 0 {
			return ""
		}
		s = s[j:]
	}
	return s
}

// IsPDF reports whether a document should also be downloaded as a PDF.
// Only the literal URL suffix is checked; the content type is never inspected.
func IsPDF(rawURL string) bool {
	return strings.HasSuffix(rawURL, ".pdf")
}

// OutputDirName derives the output directory name from the crawl root URL:
// the "https://www." prefix is dropped, slashes become underscores and the
// result is cut at the first ".".
func OutputDirName(rootURL string) string {
	name := strings.TrimPrefix(rootURL, rootURLPrefix)
	name = strings.ReplaceAll(name, "/", "_")
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return fallbackDirName
	}
	return name
}
