package handler

import "net/http"

// errorResponse sends a JSON-formatted error. The success flag and the
// error message are what the frontend keys on.
func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"success": false, "error": message}

	// Write the response using the writeJSON() helper. If this happens to return an
	// error then fall back to sending the client an empty response with a
	// 500 Internal Server Error status code.
	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// badRequestResponse returns 400 BadRequest status
func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

// notFoundResponse returns 404 NotFound status
func notFoundResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusNotFound, message)
}

// NotFound is the fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	notFoundResponse(w, "Route not found")
}

// internalErrorResponse returns 500 InternalServerError status
func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}
