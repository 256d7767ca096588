package asset

import (
	"github.com/joeycumines/go-utilpkg/jsonenc"
	"github.com/joeycumines/go-solutioncache/solution"
)

// AppendChecksumJSON appends the JSON string-literal encoding of checksum
// (its hex String, quoted and escaped) to dst. It exists so structured log
// fields (package wslog) can render a checksum as a JSON string fragment
// without paying for encoding/json's reflection-based path, reusing the
// jsonenc primitives this corpus already depends on (transitively, via
// logiface) for exactly this kind of low-level string escaping.
func AppendChecksumJSON(dst []byte, checksum solution.Checksum) []byte {
	return jsonenc.AppendString(dst, checksum.String())
}

// ChecksumJSON returns the JSON string-literal encoding of checksum.
func ChecksumJSON(checksum solution.Checksum) string {
	return string(AppendChecksumJSON(nil, checksum))
}
