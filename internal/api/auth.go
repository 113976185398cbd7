package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// Login - POST /auth/login. Le backend pose un cookie de session;
// certaines versions renvoient aussi un token dans le corps.
func (c *Client) Login(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}

	var out loginResponse
	if err := c.postJSON(ctx, "/auth/login", in, &out); err != nil {
		return err
	}

	if out.Message != "Login successful" {
		return fmt.Errorf("connexion refusée: %s", out.Message)
	}

	if out.Token != "" {
		c.token = out.Token
	}
	log.Println("✅ Connexion admin réussie")
	return nil
}

// TokenExpired - inspecte localement l'expiration du token, sans vérifier
// la signature (le secret appartient au backend). Un token illisible est
// traité comme expiré.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// SaveToken / LoadToken - persistance du token entre deux commandes admin

func SaveToken(path, token string) error {
	return os.WriteFile(path, []byte(token), 0600)
}

func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
