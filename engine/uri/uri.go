/*
Package uri classifies link targets found in Markdown documents.

Sanitize lets relative, fragment and protocol-agnostic URIs pass, as well as
URIs using one of a small set of safe protocols. Everything else is replaced
by a harmless placeholder.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package uri

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.uri'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.uri")
}

// Unsafe is substituted for URIs with a protocol not in Protocols.
const Unsafe = "javascript:void(0)"

// Protocols lists the schemes which are considered safe.
var Protocols = []string{"http", "https", "mailto", "tel"}

// Sanitize returns u trimmed of surrounding white space if it is safe,
// otherwise Unsafe.
func Sanitize(u string) string {
	url := strings.TrimSpace(u)
	if url == "" || url[0] == '#' || url[0] == '/' {
		return url
	}
	colon := strings.IndexByte(url, ':')
	if colon == -1 {
		return url
	}
	for _, protocol := range Protocols {
		if colon == len(protocol) && strings.EqualFold(url[:colon], protocol) {
			return url
		}
	}
	// a colon after '?' or '#' is not a scheme separator
	if q := strings.IndexByte(url, '?'); q != -1 && colon > q {
		return url
	}
	if h := strings.IndexByte(url, '#'); h != -1 && colon > h {
		return url
	}
	tracer().Debugf("unsafe URI %q replaced", url)
	return Unsafe
}
