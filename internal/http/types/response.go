// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON answer of the API.
type Response struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}

// WriteJSON writes data in the response envelope, encoding failures are
// returned for the caller to log.
func WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(
		Response{
			Data:    data,
			Message: message,
			Status:  status,
		},
	)
}

func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, message, nil)
}
