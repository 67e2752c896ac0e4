package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/utils/errors"
)

type response struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
	Details  []string `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeSuccessWarnings(w, data, nil)
}

// writeSuccessWarnings reports a succeeded action that carries
// non-blocking sub-step failures (e.g. a credential update that failed
// while the profile update went through).
func writeSuccessWarnings(w http.ResponseWriter, data any, warnings []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response{
		Code:     constant.ErrorTypeCode[constant.Successful],
		Message:  constant.ErrorTypeMessage[constant.Successful],
		Data:     data,
		Warnings: warnings,
	})
}

func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(errors.CustomError)
	if !ok {
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ce.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(response{
		Code:    ce.ErrorCode(),
		Message: constant.ErrorTypeMessage[ce.Type()],
		Details: ce.Details(),
	})
}
