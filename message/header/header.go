package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailsig/message/header/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation being
	// performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the operation
	// being performed failed because the header exists, but a parameter of the
	// header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation being
	// performed failed because there are multiple fields with the given name.
	ErrManyFields = errors.New("many header fields found")
)

// These are standard headers defined in RFC 5322 and RFC 2045 that this
// library touches.
const (
	ContentDisposition      = "Content-disposition"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// UnixDateWithEarlyYear is a weird one, eh? Built from dates seen in the wild
// that the usual parsers have trouble with.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Header wraps a Base, which does the actual storage and low-level field
// access. This provides several methods to make reading the header more
// convenient and some caching for complex values parsed from header fields.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base

	// valueCache holds the semantic value for a header. We assume that all
	// headers that have a semantic value are singular, which is safe for
	// content-type, from, date, etc. These fields are not typically repeated
	// in an email header.
	//
	// REMEMBER: This must only be used to hold "immutable" types.
	valueCache map[string]any
}

// getValue retrieves the cached value. The second value is a boolean that
// returns true if the cache value was set.
func (h *Header) getValue(name string) (any, bool) {
	n := strings.ToLower(name)
	v, found := h.valueCache[n]
	return v, found
}

// setValue replaces the cached value for the given name.
func (h *Header) setValue(name string, value any) {
	if h.valueCache == nil {
		h.valueCache = make(map[string]any, h.Len())
	}
	n := strings.ToLower(name)
	h.valueCache[n] = value
}

// Get retrieves the string value of the named field.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple headers for the given named
// field, it will return the first value found and return ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll fetches all the header field bodies for fields with the given name
// and returns them as a slice of strings.
//
// It returns nil with ErrNoSuchField if no field with the given name is set
// on the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// ParseTime provides the time parsing used by GetTime() and GetDate() to
// parse dates on any field body. This will attempt to parse the date using
// the format specified by RFC 5322 first and fall back to parsing it in many
// other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// getTime parses the header body as a date and caches the result.
func (h *Header) getTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)

	return t, nil
}

// GetTime gets the given date header field as a time.Time. It will attempt
// to parse the date in many formats, not just the format specified by RFC
// 5322 (though, it will try that first).
//
// It will return an error if it is unable to parse the time value from the
// date header. It will return the zero value and ErrNoSuchField if the header
// does not exist.
func (h *Header) GetTime(name string) (time.Time, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getTime(name)
	}

	t, isTime := v.(time.Time)
	if !isTime {
		return h.getTime(name)
	}

	return t, nil
}

// getAddressList will parse an addr.AddressList out of the field or return an
// error.
func (h *Header) getAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, al)

	return al, nil
}

// GetAddressList will return an addr.AddressList for the named field.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return nil and a parse error if the field body does not
// parse as an address list.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getAddressList(name)
	}

	al, isAddrList := v.(addr.AddressList)
	if !isAddrList {
		return h.getAddressList(name)
	}

	return al, nil
}

// getParamValue will parse a param.Value out of the given field or return an
// error.
func (h *Header) getParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, pv)

	return pv, nil
}

// GetParamValue will return a param.Value for the header field matching the
// given name.
//
// This will return an error if it is unable to parse a param.Value. This will
// return ErrNoSuchField if no field with the given name is present.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getParamValue(name)
	}

	pv, isPV := v.(*param.Value)
	if !isPV {
		return h.getParamValue(name)
	}

	if pv == nil {
		return pv, nil
	}

	// return a copy to prevent the cached value from being modified
	return pv.Clone(), nil
}

// GetContentType returns the Content-type header as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetMediaType returns the MIME type set in the Content-type header (other
// parameters will not be returned).
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// GetBoundary gets the boundary parameter from the Content-type header field.
//
// This method returns an empty string with ErrNoSuchField if no Content-type
// field is present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but the boundary parameter
// is not set on the field.
func (h *Header) GetBoundary() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}

	if b := pv.Boundary(); b != "" {
		return b, nil
	}

	return "", ErrNoSuchFieldParameter
}

// GetDate retrieves the Date header as a time.Time value.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// GetSubject returns the value of the Subject header field.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// GetFrom returns the From address field as an addr.AddressList.
func (h *Header) GetFrom() (addr.AddressList, error) {
	return h.GetAddressList(From)
}

// GetTo returns the To address field as an addr.AddressList.
func (h *Header) GetTo() (addr.AddressList, error) {
	return h.GetAddressList(To)
}

// GetTransferEncoding returns the content of the Content-transfer-encoding
// header.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}
