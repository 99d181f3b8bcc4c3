package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/core/product"
	"github.com/milsabores/pasteleria/validate"
)

type ItemNew struct {
	ProductID string `json:"productoId" validate:"required,uuid"`
	VariantID string `json:"varianteId" validate:"omitempty,uuid"`
}

type DiscountNew struct {
	Code string `json:"codigo" validate:"required"`
}

// View is the cart payload handlers respond with.
type View struct {
	Items   []Item  `json:"items"`
	Summary Summary `json:"resumen"`
}

func view(s *Store) View {
	return View{Items: s.Items(), Summary: s.Totals()}
}

func HandleShow(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s := NewStore(SessionStorage(session, ctx))
		return web.Respond(ctx, w, view(s), http.StatusOK)
	}
}

func HandleSummary(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s := NewStore(SessionStorage(session, ctx))
		return web.Respond(ctx, w, s.Totals(), http.StatusOK)
	}
}

// HandleCreateItem adds one unit of a product (or one of its variants)
// to the session cart. The price is captured from the catalog at this
// moment and kept for the lifetime of the line.
func HandleCreateItem(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ni ItemNew
		if err := web.Decode(w, r, &ni); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ni); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		prd, err := product.Fetch(ctx, db, ni.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		price := prd.BasePrice
		label := ""
		if ni.VariantID != "" {
			v, err := product.FetchVariant(ctx, db, ni.ProductID, ni.VariantID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return weberr.NotFound(err)
				}
				return err
			}
			price = v.Price
			label = v.Name
		}

		it, err := NewItem(ni.ProductID, ni.VariantID, prd.Name, price, label)
		if err != nil {
			return weberr.BadRequest(err)
		}

		s := NewStore(SessionStorage(session, ctx))
		s.Add(it)

		return web.Respond(ctx, w, view(s), http.StatusOK)
	}
}

func HandleDeleteItem(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		productID := web.Param(r, "product_id")
		if err := validate.CheckID(productID); err != nil {
			return weberr.BadRequest(err)
		}

		variantID := r.URL.Query().Get("variante")
		if variantID != "" {
			if err := validate.CheckID(variantID); err != nil {
				return weberr.BadRequest(err)
			}
		}

		s := NewStore(SessionStorage(session, ctx))
		s.Remove(productID, variantID)

		return web.Respond(ctx, w, view(s), http.StatusOK)
	}
}

func HandleDelete(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s := NewStore(SessionStorage(session, ctx))
		s.Clear()

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleApplyDiscount evaluates a promo code against the session cart.
// A wrong code is not an error: the response simply reports the
// discount as not applied so the client can retry.
func HandleApplyDiscount(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nd DiscountNew
		if err := web.Decode(w, r, &nd); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nd); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		s := NewStore(SessionStorage(session, ctx))

		var msg string
		switch {
		case s.DiscountApplied() && ValidCode(nd.Code):
			msg = "El descuento ya fue aplicado."
		case s.Apply(nd.Code):
			msg = "¡10% de descuento aplicado!"
		default:
			msg = "Código de descuento incorrecto."
		}

		resp := struct {
			Applied bool    `json:"aplicado"`
			Message string  `json:"mensaje"`
			Summary Summary `json:"resumen"`
		}{
			Applied: s.DiscountApplied(),
			Message: msg,
			Summary: s.Totals(),
		}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
