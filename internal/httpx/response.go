package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body shape for errors and batch acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"message":"encode error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageResponse{Message: msg})
}

// Created writes a 201 with a Location header pointing at the new resource.
func Created(w http.ResponseWriter, location string, payload any) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, payload)
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
