package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/core/cart"
	"github.com/milsabores/pasteleria/core/claims"
	"github.com/milsabores/pasteleria/core/product"
	"github.com/milsabores/pasteleria/core/user"
	"github.com/milsabores/pasteleria/database"
	"github.com/milsabores/pasteleria/validate"
)

// A session can outlive its user account, so the buyer is re-checked
// at checkout time.
var errBuyerGone = errors.New("buyer account no longer exists")

// HandleCheckout turns the session cart into a durable order. Stock is
// checked and decremented inside the same transaction that records the
// order; the cart is cleared only once the order is committed, so a
// failed checkout leaves it intact for a retry.
func HandleCheckout(db *sqlx.DB, session *scs.SessionManager, timeout time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		s := cart.NewStore(cart.SessionStorage(session, ctx))
		if s.Empty() {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		now := time.Now().UTC()
		sum := s.Totals()
		ord := Order{
			ID:        validate.GenerateID(),
			UserID:    clm.UserID,
			Status:    Completed,
			Total:     sum.Total,
			CreatedAt: now,
			UpdatedAt: now,
			Items:     []Item{},
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if _, err := user.Fetch(ctx, tx, clm.UserID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return errBuyerGone
				}
				return fmt.Errorf("fetching buyer: %w", err)
			}

			if err := Create(ctx, tx, ord); err != nil {
				return err
			}

			for _, li := range s.Items() {
				if _, err := product.Fetch(ctx, tx, li.ProductID); err != nil {
					return fmt.Errorf("fetching product[%s]: %w", li.ProductID, err)
				}

				if li.VariantID != "" {
					if err := product.DecrementStock(ctx, tx, li.VariantID, li.Quantity); err != nil {
						return fmt.Errorf("reserving %d of variant[%s]: %w", li.Quantity, li.VariantID, err)
					}
				}

				it := Item{
					OrderID:      ord.ID,
					ProductID:    li.ProductID,
					VariantID:    li.VariantID,
					ProductName:  li.Name,
					VariantLabel: li.VariantLabel,
					UnitPrice:    li.UnitPrice,
					Quantity:     li.Quantity,
					Subtotal:     li.UnitPrice * li.Quantity,
					CreatedAt:    now,
				}
				if err := CreateItem(ctx, tx, it); err != nil {
					return err
				}
				ord.Items = append(ord.Items, it)
			}

			return nil
		})

		if err != nil {
			if errors.Is(err, errBuyerGone) {
				return weberr.NotAuthorized(err)
			}
			if errors.Is(err, product.ErrInsufficientStock) {
				return weberr.NewError(err, "insufficient stock for one of the cart items", http.StatusUnprocessableEntity)
			}
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "one of the cart items no longer exists", http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("creating order for user[%s]: %w", clm.UserID, err)
		}

		s.Clear()

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orders, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing orders: %w", err)
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		if ord.Items, err = FetchItems(ctx, db, id); err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

func HandleRecentSales(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		const days = 15

		now := time.Now().UTC()
		from := now.AddDate(0, 0, -days).Truncate(24 * time.Hour)

		orders, err := ListBetween(ctx, db, from, now)
		if err != nil {
			return fmt.Errorf("listing recent orders: %w", err)
		}

		return web.Respond(ctx, w, RecentSales(orders, now, days), http.StatusOK)
	}
}

func HandleSemesterSales(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		year := time.Now().UTC().Year()
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)

		orders, err := ListBetween(ctx, db, from, to)
		if err != nil {
			return fmt.Errorf("listing semester orders: %w", err)
		}

		return web.Respond(ctx, w, SemesterSales(orders, year), http.StatusOK)
	}
}

func HandleOverview(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		total, err := Count(ctx, db)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		monthOrders, err := ListBetween(ctx, db, monthStart, now)
		if err != nil {
			return fmt.Errorf("listing current month orders: %w", err)
		}

		ov := Overview{TotalOrders: total, MonthOrders: len(monthOrders)}
		for _, ord := range monthOrders {
			ov.MonthSales += ord.Total
		}

		return web.Respond(ctx, w, ov, http.StatusOK)
	}
}
