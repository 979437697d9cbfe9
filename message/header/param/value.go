package param

import (
	"mime"
	"regexp"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-type header.
	Boundary = "boundary"

	// Protocol is the name of the protocol parameter set on the Content-type
	// header of a multipart/signed message, e.g.,
	// "application/pgp-signature".
	Protocol = "protocol"

	// Micalg is the name of the message integrity check algorithm parameter
	// set on the Content-type header of a multipart/signed message, e.g.,
	// "pgp-sha256".
	Micalg = "micalg"
)

// lenientParam matches a single parameter in a Content-type body, quoted or
// not, when strict media type parsing has already failed.
var lenientParam = regexp.MustCompile(`(?i);\s*([a-z0-9_-]+)=(?:"([^"]*)"|([^";\s]+))`)

// Value represents a parsed parameterized header field, such as is used in
// the Content-type and Content-disposition headers. A Value object is
// immutable.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body and parses it as a Value. It first attempts
// a strict parse. If that fails, it falls back onto a lenient parse that
// lowercases the primary value and scans for quoted and unquoted parameters,
// because real mail is frequently sloppier than the grammar allows and the
// downstream code mostly just needs the boundary token. It returns an error
// only when not even a primary value can be found.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err == nil {
		return &Value{mt, ps}, nil
	}

	return parseLenient(v, err)
}

func parseLenient(v string, strictErr error) (*Value, error) {
	primary := v
	if ix := strings.IndexRune(v, ';'); ix >= 0 {
		primary = v[:ix]
	}
	primary = strings.ToLower(strings.TrimSpace(primary))
	if primary == "" {
		return nil, strictErr
	}

	ps := map[string]string{}
	for _, m := range lenientParam.FindAllStringSubmatch(v, -1) {
		name := strings.ToLower(m[1])
		val := m[2]
		if val == "" {
			val = m[3]
		}
		if _, seen := ps[name]; !seen {
			ps[name] = val
		}
	}

	return &Value{primary, ps}, nil
}

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// NewWithParams creates a new parameterized header field with the given
// parameters.
func NewWithParams(v string, ps map[string]string) *Value {
	c := make(map[string]string, len(ps))
	for k, val := range ps {
		c[k] = val
	}
	return &Value{v, c}
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value,
// e.g., "text/html", "multipart/signed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type is only intended for use with the Content-type header. It searches the
// MediaType() for a slash. If found, it will return the string before that
// slash. If no slash is found, it returns an empty string.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype is only intended for use with the Content-type header. It searches
// the MediaType() for a slash. If found, it will return the string after that
// slash. If no slash is found, it returns an empty string.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters encoded on this Value as a map. Do not
// modify this map.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	return pv.ps[k]
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// Protocol returns the value of the "protocol" parameter.
func (pv *Value) Protocol() string {
	return pv.ps[Protocol]
}

// Micalg returns the value of the "micalg" parameter.
func (pv *Value) Micalg() string {
	return pv.ps[Micalg]
}

// String returns the serialized value of the Value including the primary
// value and all parameters, parameters sorted by name.
func (pv *Value) String() string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, k := range pks {
		sb.WriteString("; ")
		sb.WriteString(k)
		sb.WriteRune('=')
		sb.WriteString(pv.ps[k])
	}

	return sb.String()
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	return NewWithParams(pv.v, pv.ps)
}
