package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api/background"
	"github.com/milsabores/pasteleria/api/middleware"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/core/auth"
	"github.com/milsabores/pasteleria/core/cart"
	"github.com/milsabores/pasteleria/core/category"
	"github.com/milsabores/pasteleria/core/clientlog"
	"github.com/milsabores/pasteleria/core/contact"
	"github.com/milsabores/pasteleria/core/order"
	"github.com/milsabores/pasteleria/core/product"
	"github.com/milsabores/pasteleria/core/user"
	"github.com/milsabores/pasteleria/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin      string
	Log             logrus.FieldLogger
	DB              *sqlx.DB
	Session         *scs.SessionManager
	Background      *background.Background
	Limiter         *rate.Limiter
	CheckoutTimeout time.Duration
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	admin := auth.Admin(cfg.Session)
	limited := middleware.RateLimit(cfg.Limiter)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/{id}", user.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.DB), admin)
	a.Handle(http.MethodPut, "/users/{id}", user.HandleUpdate(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/users/{id}", user.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/categories/{id}", category.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/categories", category.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/categories/{id}", category.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/categories/{id}", category.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/products/{id}", product.HandleDelete(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}/variants/{variant_id}", product.HandleUpdateVariant(cfg.DB), admin)
	a.Handle(http.MethodPost, "/products/{id}/images", product.HandleCreateImage(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/products/{id}/images/{image_id}", product.HandleDeleteImage(cfg.DB), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.Session))
	a.Handle(http.MethodGet, "/cart/summary", cart.HandleSummary(cfg.Session))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.Session))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.DB, cfg.Session))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleDeleteItem(cfg.Session))
	a.Handle(http.MethodPost, "/cart/discount", cart.HandleApplyDiscount(cfg.Session))

	a.Handle(http.MethodPost, "/orders", order.HandleCheckout(cfg.DB, cfg.Session, cfg.CheckoutTimeout), authen)
	a.Handle(http.MethodGet, "/orders/stats/recent", order.HandleRecentSales(cfg.DB), admin)
	a.Handle(http.MethodGet, "/orders/stats/semester", order.HandleSemesterSales(cfg.DB), admin)
	a.Handle(http.MethodGet, "/orders/stats/summary", order.HandleOverview(cfg.DB), admin)
	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB), admin)
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), admin)

	a.Handle(http.MethodPost, "/contacts", contact.HandleCreate(cfg.DB), limited)
	a.Handle(http.MethodGet, "/contacts", contact.HandleList(cfg.DB), admin)
	a.Handle(http.MethodPut, "/contacts/{id}/read", contact.HandleMarkRead(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/contacts/{id}", contact.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodPost, "/logs", clientlog.HandleBatch(cfg.Log, cfg.Background))

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
