// Package naming derives the deterministic bucket, object and URN names
// used to correlate Box files with their uploaded OSS counterparts.
package naming

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// ExtensionOf returns the substring after the last dot of filename,
// empty when the filename has no dot.
func ExtensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx+1:]
}

// ObjectName builds the OSS object key for a Box file. The key embeds the
// file id so repeated requests for the same file converge on one object.
func ObjectName(fileID, filename string) string {
	return fileID + "." + ExtensionOf(filename)
}

// BucketKey derives the per-user OSS bucket name: application client id
// plus the Box user's display name and numeric id, lower-cased with
// non-word characters stripped. Deterministic for a given user, so every
// Box account maps to exactly one bucket.
func BucketKey(clientID, userName, userID string) string {
	return strings.ToLower(clientID) + strings.ToLower(nonWord.ReplaceAllString(userName, "")+userID)
}

// ToURLSafeBase64 encodes s as URL-safe Base64 with padding stripped,
// the URN form the Model Derivative service expects.
func ToURLSafeBase64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// FromURLSafeBase64 decodes a URN back into the original object id.
func FromURLSafeBase64(urn string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(urn)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// contentTypes maps known source-file extensions to the content type the
// OSS upload must declare.
var contentTypes = map[string]string{
	"png": "application/image",
	"jpg": "application/image",
	"txt": "application/txt",
	"ipt": "application/vnd.autodesk.inventor.part",
	"iam": "application/vnd.autodesk.inventor.assembly",
	"dwf": "application/vnd.autodesk.autocad.dwf",
	"dwg": "application/vnd.autodesk.autocad.dwg",
	"f3d": "application/vnd.autodesk.fusion360",
	"f2d": "application/vnd.autodesk.fusiondoc",
	"rvt": "application/vnd.autodesk.revit",
}

// ContentTypeFor returns the upload content type for a filename,
// falling back to application/{extension} for unknown extensions.
func ContentTypeFor(filename string) string {
	extension := ExtensionOf(filename)
	if contentType, ok := contentTypes[extension]; ok {
		return contentType
	}
	return "application/" + extension
}
