// Package middle contains middleware for use with the Shrdlite server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dekarrin/shrdlite/server/result"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// SessionIDKey is the context key RequireSessionAuth populates with the
// session ID bound by the request's JWT.
type sessionIDKey int

const SessionIDKey sessionIDKey = 0

// RequireSessionAuth returns Middleware that parses the Bearer JWT on each
// request, validates it against secret, and places the session ID it binds
// into the request context. Requests with no token, or an invalid one,
// receive an HTTP-401 and never reach next.
func RequireSessionAuth(secret []byte) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := GetJWT(req)
			if err != nil {
				r := result.Unauthorized("", err.Error())
				r.WriteResponse(w)
				return
			}

			sessionID, err := ValidateSessionJWT(tok, secret)
			if err != nil {
				r := result.Unauthorized("", err.Error())
				r.WriteResponse(w)
				return
			}

			ctx := context.WithValue(req.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the handler panics, it writes out an HTTP-500 with a generic message and
// never lets the panic escape to the net/http server.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		return true
	}
	return false
}

// GetJWT extracts the bearer token from the Authorization header.
func GetJWT(req *http.Request) (string, error) {
	authHeader := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return authHeader[len(prefix):], nil
}

// ValidateSessionJWT parses and validates a session token signed with
// secret, returning the session ID it binds.
func ValidateSessionJWT(tok string, secret []byte) (uuid.UUID, error) {
	var sessionID uuid.UUID

	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("shrdlite"))
	if err != nil {
		return sessionID, err
	}

	subj, err := parsed.Claims.GetSubject()
	if err != nil {
		return sessionID, fmt.Errorf("cannot get subject: %w", err)
	}
	sessionID, err = uuid.Parse(subj)
	if err != nil {
		return sessionID, fmt.Errorf("cannot parse subject UUID: %w", err)
	}

	return sessionID, nil
}
