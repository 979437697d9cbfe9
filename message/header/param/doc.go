// Package param provides a tool for dealing with parameterized headers, the
// Content-type and Content-disposition headers in particular. It provides
// helper methods for breaking down MIME types and for reading the parameters
// that matter to a multipart/signed message: boundary, protocol, and micalg.
package param
