package pkg

import (
	"mime"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON    string
	Text    string
	CSV     string
	Parquet string
}{
	JSON:    "application/json",
	Text:    "text/plain; charset=utf-8",
	CSV:     "text/csv; charset=utf-8",
	Parquet: "application/vnd.apache.parquet",
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponseBytes(w, ContentType.Text, []byte(message), http.StatusOK)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Add("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response of %d bytes: %s", len(message), err)
	}
}

// IsJSONRequest reports whether the request body is declared as JSON.
// Media type parameters such as charset are ignored.
func IsJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == ContentType.JSON
}
