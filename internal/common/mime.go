package common

import (
	"path/filepath"
	"strings"
)

// MIME types accepted for resume candidates, from any acquisition source.
const (
	MIMEPDF   = "application/pdf"
	MIMEDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDoc   = "application/msword"
	MIMEText  = "text/plain"
	MIMEJPEG  = "image/jpeg"
	MIMEPNG   = "image/png"
	MIMEOctet = "application/octet-stream"
)

var allowedMIMETypes = map[string]struct{}{
	MIMEPDF:  {},
	MIMEDocx: {},
	MIMEDoc:  {},
	MIMEText: {},
	MIMEJPEG: {},
	MIMEPNG:  {},
}

// IsAllowedMIME reports whether mt belongs to the resume upload allow-list.
// Parameters after a semicolon ("text/plain; charset=utf-8") are ignored.
func IsAllowedMIME(mt string) bool {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	_, ok := allowedMIMETypes[strings.ToLower(strings.TrimSpace(mt))]
	return ok
}

var extToMIME = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
	".doc":  MIMEDoc,
	".txt":  MIMEText,
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
	".png":  MIMEPNG,
}

// MIMEFromFilename maps a file extension to its MIME type. Unknown
// extensions yield application/octet-stream, which is never allow-listed.
func MIMEFromFilename(name string) string {
	if mt, ok := extToMIME[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return MIMEOctet
}
