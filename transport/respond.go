package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	cerr "github.com/farhanmaulana/clinic-orders/utils/errors"
)

type successBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, successBody{Success: true, Message: "success", Data: data})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, successBody{Success: true, Message: "success", Data: data})
}

// writeError maps the error taxonomy to a structured JSON body; unknown error
// types become a generic 500 so no internals leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var se cerr.StockError
	if stderrors.As(err, &se) {
		var base cerr.CustomError
		_ = stderrors.As(err, &base)
		writeJSON(w, base.ErrorHTTPCode(), errorBody{
			Error:   base.Error(),
			Code:    base.ErrorCode(),
			Details: se.Details(),
		})
		return
	}

	var ce cerr.CustomError
	if stderrors.As(err, &ce) {
		writeJSON(w, ce.ErrorHTTPCode(), errorBody{
			Error: ce.Error(),
			Code:  ce.ErrorCode(),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error: "error internal",
		Code:  "0001",
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
