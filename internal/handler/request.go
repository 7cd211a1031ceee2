package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/google/uuid"
)

// maxJSONBody caps request bodies for the JSON endpoints. Checklist
// documents are a few tens of kilobytes at most.
const maxJSONBody = 1 << 20 // 1 MB

// decodeJSON decodes a JSON request body into dst.
// Returns a domain.EINVALID error for malformed or oversized bodies.
func decodeJSON(r *http.Request, dst interface{}) error {
	const op = "handler.decode_json"

	body := http.MaxBytesReader(nil, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.Errorf(domain.ETOOLARGE, op, "Request body too large")
		}
		return domain.Invalid(op, "Invalid JSON request body")
	}

	// A trailing second JSON value is a malformed request.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return domain.Invalid(op, "Invalid JSON request body")
	}

	return nil
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Invalid("handler.path_uuid", "Invalid ID in URL")
	}
	return id, nil
}

// queryReportType reads and validates the reportType query parameter.
// An empty parameter falls back to the booking's requested variant, so
// callers treat the zero value as "not specified".
func queryReportType(r *http.Request) (domain.ReportType, error) {
	raw := r.URL.Query().Get("reportType")
	if raw == "" {
		return "", nil
	}

	rt := domain.ReportType(raw)
	if !rt.IsValid() {
		return "", domain.Errorf(domain.ESCHEMA, "handler.report_type", "Unknown report type %q", raw)
	}
	return rt, nil
}
