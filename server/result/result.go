// Package result contains the response values the server's endpoint
// functions return, and the logic to write them out as HTTP responses. Every
// Result carries both the payload (or user-facing error text) and an
// internal message that is logged but never shown to the client.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body of every error Result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internalMessage formats the optional internal-message arguments endpoint
// helpers accept: no arguments gives fallback, otherwise the first argument
// is a format string for the rest.
func internalMessage(fallback string, args []interface{}) string {
	if len(args) < 1 {
		return fallback
	}
	return fmt.Sprintf(args[0].(string), args[1:]...)
}

// OK returns a Result containing an HTTP-200 and the given response body.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, respObj, internalMessage("OK", internalMsg))
}

// NoContent returns a Result containing an HTTP-204.
func NoContent(internalMsg ...interface{}) Result {
	return Response(http.StatusNoContent, nil, internalMessage("no content", internalMsg))
}

// Created returns a Result containing an HTTP-201 and the given response
// body.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusCreated, respObj, internalMessage("created", internalMsg))
}

// BadRequest returns a Result containing an HTTP-400 with the given
// user-facing message.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, internalMessage("bad request", internalMsg))
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested resource was not found", internalMessage("not found", internalMsg))
}

// Forbidden returns a Result containing an HTTP-403.
func Forbidden(internalMsg ...interface{}) Result {
	return Err(http.StatusForbidden, "You don't have permission to do that", internalMessage("forbidden", internalMsg))
}

// Unauthorized returns a Result containing an HTTP-401 response along with
// the proper WWW-Authenticate header. userMsg may be "" for a generic
// message.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, internalMessage("unauthorized", internalMsg)).
		WithHeader("WWW-Authenticate", `Bearer realm="Shrdlite server", charset="utf-8"`)
}

// InternalServerError returns a Result containing an HTTP-500. The generic
// user-facing message is fixed; the internal message carries the detail.
func InternalServerError(internalMsg ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMessage("internal server error", internalMsg))
}

// Response builds a non-error JSON Result. If status is
// http.StatusNoContent, respObj is not read and may be nil; otherwise it
// must not be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err builds an error JSON Result whose body is an ErrorResponse carrying
// userMsg.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// TextErr is like Err but writes the user message as plain text with no
// JSON encoding of any kind, for responses produced while handling a panic
// where JSON marshaling itself may be suspect.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// Result is one endpoint outcome, ready to be logged and written out as an
// HTTP response.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of the Result that writes the given header when
// responding.
func (r Result) WithHeader(name, val string) Result {
	r.hdrs = append(r.hdrs, [2]string{name, val})
	return r
}

// PrepareMarshaledResponse marshals the JSON body of the Result, if it has
// one, so that a marshaling failure can be detected (and replaced with a
// clean HTTP-500) before any status line has been written. Calling it again
// after a successful call has no effect.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes the Result out on w. It panics on an unpopulated
// Result or an unmarshalable body; callers that need a clean failure path
// should call PrepareMarshaledResponse first.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte
	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		respBytes = r.respJSONBytes
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
