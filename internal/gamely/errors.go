package gamely

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RequestError is returned when the backend answers with a non-2xx status.
// Messages carries the server-provided error strings for display.
type RequestError struct {
	StatusCode int
	Messages   []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// TransportError wraps a network-level failure reaching the backend.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "backend unavailable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Messages flattens an error into the list of strings views render.
// RequestErrors contribute the server-provided list; anything else becomes
// a single-entry list.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Messages
	}
	return []string{err.Error()}
}

// errorEnvelope mirrors the backend error payload:
// {"error": {"message": "..."}} where message is a string or a list.
type errorEnvelope struct {
	Error struct {
		Message messageList `json:"message"`
	} `json:"error"`
}

type messageList []string

func (m *messageList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = messageList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = messageList(many)
	return nil
}
