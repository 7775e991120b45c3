package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/okian/echochamber/internal/domain/types"
)

// Media types understood by the API.
const (
	contentTypeJSON    = "application/json; charset=utf-8"
	contentTypeMsgpack = "application/msgpack"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// wantsMsgpack reports whether the client asked for msgpack responses.
func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && (mt == contentTypeMsgpack || mt == "application/x-msgpack") {
			return true
		}
	}
	return false
}

// isMsgpack reports whether the request body is msgpack encoded.
func isMsgpack(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mt == contentTypeMsgpack || mt == "application/x-msgpack")
}

// decodeBody reads the request body into v as JSON or msgpack, following
// the request's Content-Type. JSON is the default.
func decodeBody(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if isMsgpack(r) {
		dec := msgpack.NewDecoder(body)
		dec.UseLooseInterfaceDecoding(true)
		return dec.Decode(v)
	}
	return json.NewDecoder(body).Decode(v)
}

// writeResponse encodes v with the codec the client negotiated.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsMsgpack(r) {
		b, err := msgpack.Marshal(v)
		if err == nil {
			w.Header().Set("Content-Type", contentTypeMsgpack)
			w.WriteHeader(status)
			_, _ = w.Write(b)
			return
		}
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a transport-level {"error": msg} body.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeResponse(w, r, status, types.ErrorResponse{Error: msg})
}
