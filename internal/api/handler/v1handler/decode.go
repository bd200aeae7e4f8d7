package v1handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"domainshop/pkg/serrors"
)

const maxBodyBytes = 1 << 20

// input holds the fields of a JSON or urlencoded request body. Values keep
// the shape they arrived in so they can be echoed back unchanged.
type input map[string]any

// decodeInput reads r's body as JSON when the content type says so and as a
// form otherwise.
func decodeInput(w http.ResponseWriter, r *http.Request) (input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		in := input{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&in); err != nil && err != io.EOF { //nolint: errorlint
			return input{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
		}

		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return input{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form body")
	}
	in := input{}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			in[k] = v[0]
		}
	}

	return in, nil
}

// has reports whether key was present at all.
func (in input) has(key string) bool {
	v, ok := in[key]

	return ok && v != nil
}

// str returns key's value as text. Absent and null values are empty.
func (in input) str(key string) string {
	switch v := in[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// echo returns the original value of key for a response, or nil.
func (in input) echo(key string) any {
	if s, ok := in[key].(string); ok {
		return strings.TrimSpace(s)
	}

	return in[key]
}
