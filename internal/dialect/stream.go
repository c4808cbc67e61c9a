package dialect

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"llmbridge/internal/core"
)

// doneMarker terminates an SSE stream. It is a no-op, not an error.
const doneMarker = "[DONE]"

// Sink receives the cumulative text after every decoded delta. Callers always
// see monotonically growing full text, never a raw fragment.
type Sink func(cumulative string)

// DecodeStream consumes an SSE byte stream and returns the final accumulated
// text. Lines are buffered across reads so a delta split over two network
// chunks still decodes; a malformed JSON payload skips that one line without
// aborting the stream. The context cancels the read loop: the caller ties ctx
// to the HTTP request so cancellation also releases the connection.
func DecodeStream(ctx context.Context, r io.Reader, event EventFunc, sink Sink) (string, error) {
	reader := bufio.NewReader(r)
	var full string

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// A trailing partial line is an unterminated event; drop it.
				return full, nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", core.NewNetworkError("", "stream read failed: "+err.Error(), err)
		}

		data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: ")
		if !ok || data == doneMarker {
			continue
		}
		if !gjson.Valid(data) {
			// One bad line never kills the stream.
			continue
		}

		delta, replace := event([]byte(data))
		switch {
		case replace != "" && replace != full:
			full = replace
		case delta != "":
			full += delta
		default:
			continue
		}
		if sink != nil {
			sink(full)
		}
	}
}
