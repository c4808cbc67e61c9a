package transport

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// maxDecompressedSize caps inflation of vendor response bodies.
const maxDecompressedSize = 2 * 1024 * 1024

// decompress inflates a response body according to Content-Encoding. The
// original bytes come back unchanged when no decoding applies or decoding
// fails; vendor error bodies still parse either way.
func decompress(body []byte, contentEncoding string) []byte {
	if len(body) == 0 || contentEncoding == "" {
		return body
	}

	// "gzip, deflate" style lists: the first entry is the outermost coding.
	encoding := strings.ToLower(strings.TrimSpace(strings.Split(contentEncoding, ",")[0]))

	var reader io.Reader
	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return body
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(bytes.NewReader(body))
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(bytes.NewReader(body))
	default:
		return body
	}

	decompressed, err := io.ReadAll(io.LimitReader(reader, maxDecompressedSize))
	if err != nil {
		return body
	}
	return decompressed
}
