package api

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/database"
)

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		resp := struct {
			Status string `json:"status"`
		}{Status: "ok"}

		if err := database.StatusCheck(ctx, db); err != nil {
			resp.Status = "database unavailable"
			return web.Respond(ctx, w, resp, http.StatusInternalServerError)
		}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
