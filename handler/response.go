package handler

import (
	"encoding/json"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

type jsonResponse struct {
	status int
	body   any
}

// JSON renders v as the response body with the given status.
func JSON(status int, v any) Response {
	return jsonResponse{status: status, body: v}
}

// Error renders {"error": message} with the given status.
func Error(status int, message string) Response {
	return jsonResponse{status: status, body: ErrorBody{Error: message}}
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	data, err := json.Marshal(j.body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(data, '\n'))
	return err
}

// Fail hands err to the ErrorHandler instead of rendering a body.
func Fail(err error) Response {
	return ResponseFunc(func(http.ResponseWriter, *http.Request) error { return err })
}
