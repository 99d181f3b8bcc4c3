package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/rate"
)

// RateLimit rejects requests from clients that exceed the limiter's
// per-client rate. Clients are keyed by remote IP.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !lim.Check(ip) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests, slow down", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
