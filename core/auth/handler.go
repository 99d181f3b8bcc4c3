package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/core/claims"
	"github.com/milsabores/pasteleria/core/user"
	"github.com/milsabores/pasteleria/validate"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type LoginRequest struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu user.UserSignup
		if err := web.Decode(w, r, &nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		usr := user.User{
			ID:        validate.GenerateID(),
			RUT:       nu.RUT,
			FirstName: nu.FirstName,
			LastName:  nu.LastName,
			Email:     nu.Email,
			Password:  string(hash),
			Address:   nu.Address,
			Region:    nu.Region,
			Commune:   nu.Commune,
			Role:      claims.RoleClient,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := user.Create(ctx, db, usr); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				err := errors.New("rut or email already registered")
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return err
		}

		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		session.Put(ctx, userIDKey, usr.ID)
		session.Put(ctx, roleKey, usr.Role)

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var lr LoginRequest
		if err := web.Decode(w, r, &lr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(lr); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		usr, err := user.FetchByEmail(ctx, db, lr.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotAuthorized(errors.New("wrong credentials"))
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(lr.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("wrong credentials"))
		}

		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		session.Put(ctx, userIDKey, usr.ID)
		session.Put(ctx, roleKey, usr.Role)

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
