package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrTokenExpire = errors.New("token de session expiré — reconnectez-vous")

// Error - réponse non-2xx du backend. Le message vient du champ "error"
// (ou "message") renvoyé par les handlers gin.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend a répondu %d: %s", e.Status, e.Message)
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		msg = body.Error
		if msg == "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	if msg == "" {
		msg = "réponse vide"
	}
	return &Error{Status: status, Message: msg}
}

// IsServerRejection - vrai si l'erreur est un refus du serveur (validation,
// introuvable, conflit...) et non une panne de transport
func IsServerRejection(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}
