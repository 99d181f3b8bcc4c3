package clientlog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/milsabores/pasteleria/api/background"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/validate"
	"github.com/sirupsen/logrus"
)

// HandleBatch accepts a batch of browser log entries and writes them
// off the request path, so a chatty client never slows its own calls.
func HandleBatch(log logrus.FieldLogger, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var batch Batch
		if err := web.Decode(w, r, &batch); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(batch); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		bg.Add(func() error {
			for _, e := range batch.Entries {
				entry := log.WithFields(logrus.Fields{
					"origin":    "client",
					"timestamp": e.Timestamp,
				})
				for k, v := range e.Context {
					entry = entry.WithField("client_"+k, v)
				}

				switch e.Level {
				case "debug":
					entry.Debug(e.Message)
				case "warn":
					entry.Warn(e.Message)
				case "error":
					entry.Error(e.Message)
				default:
					entry.Info(e.Message)
				}
			}
			return nil
		})

		return web.Respond(ctx, w, nil, http.StatusAccepted)
	}
}
