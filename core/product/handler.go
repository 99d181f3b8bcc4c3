package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api/web"
	"github.com/milsabores/pasteleria/api/weberr"
	"github.com/milsabores/pasteleria/database"
	"github.com/milsabores/pasteleria/validate"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var prds []Product
		var err error

		if categoryID := r.URL.Query().Get("categoria"); categoryID != "" {
			if err := validate.CheckID(categoryID); err != nil {
				return weberr.BadRequest(err)
			}
			prds, err = ListByCategory(ctx, db, categoryID)
		} else {
			prds, err = List(ctx, db)
		}
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		variants, err := ListVariants(ctx, db)
		if err != nil {
			return fmt.Errorf("listing variants: %w", err)
		}

		byProduct := make(map[string][]Variant)
		for _, v := range variants {
			byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
		}
		for i := range prds {
			prds[i].Variants = byProduct[prds[i].ID]
			if prds[i].Variants == nil {
				prds[i].Variants = []Variant{}
			}
			prds[i].Images = []Image{}
		}

		return web.Respond(ctx, w, prds, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		if prd.Variants, err = FetchVariants(ctx, db, id); err != nil {
			return err
		}
		if prd.Images, err = FetchImages(ctx, db, id); err != nil {
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var np ProductNew
		if err := web.Decode(w, r, &np); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(np); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		now := time.Now().UTC()
		prd := Product{
			ID:          validate.GenerateID(),
			CategoryID:  np.CategoryID,
			Name:        np.Name,
			Description: np.Description,
			ImageURL:    np.ImageURL,
			BasePrice:   np.BasePrice,
			CreatedAt:   now,
			UpdatedAt:   now,
			Variants:    []Variant{},
			Images:      []Image{},
		}

		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, prd); err != nil {
				return err
			}

			for _, nv := range np.Variants {
				v := Variant{
					ID:            validate.GenerateID(),
					ProductID:     prd.ID,
					Name:          nv.Name,
					Price:         nv.Price,
					Stock:         nv.Stock,
					NutritionInfo: nv.NutritionInfo,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := CreateVariant(ctx, tx, v); err != nil {
					return err
				}
				prd.Variants = append(prd.Variants, v)
			}

			for _, ni := range np.Images {
				img := Image{
					ID:        validate.GenerateID(),
					ProductID: prd.ID,
					URL:       ni.URL,
					Position:  ni.Position,
					CreatedAt: now,
				}
				if err := CreateImage(ctx, tx, img); err != nil {
					return err
				}
				prd.Images = append(prd.Images, img)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}

		return web.Respond(ctx, w, prd, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.CategoryID != nil {
			prd.CategoryID = up.CategoryID
		}
		if up.Name != nil {
			prd.Name = *up.Name
		}
		if up.Description != nil {
			prd.Description = *up.Description
		}
		if up.ImageURL != nil {
			prd.ImageURL = *up.ImageURL
		}
		if up.BasePrice != nil {
			prd.BasePrice = *up.BasePrice
		}
		prd.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, prd); err != nil {
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleUpdateVariant(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		variantID := web.Param(r, "variant_id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(variantID); err != nil {
			return weberr.BadRequest(err)
		}

		var up VariantUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		v, err := FetchVariant(ctx, db, id, variantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.Name != nil {
			v.Name = *up.Name
		}
		if up.Price != nil {
			v.Price = *up.Price
		}
		if up.Stock != nil {
			v.Stock = *up.Stock
		}
		if up.NutritionInfo != nil {
			v.NutritionInfo = *up.NutritionInfo
		}
		v.UpdatedAt = time.Now().UTC()

		if err := UpdateVariant(ctx, db, v); err != nil {
			return err
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		if err := Delete(ctx, db, id); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleCreateImage(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var ni ImageNew
		if err := web.Decode(w, r, &ni); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ni); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		if _, err := Fetch(ctx, db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		img := Image{
			ID:        validate.GenerateID(),
			ProductID: id,
			URL:       ni.URL,
			Position:  ni.Position,
			CreatedAt: time.Now().UTC(),
		}

		if err := CreateImage(ctx, db, img); err != nil {
			return err
		}

		return web.Respond(ctx, w, img, http.StatusCreated)
	}
}

func HandleDeleteImage(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		imageID := web.Param(r, "image_id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(imageID); err != nil {
			return weberr.BadRequest(err)
		}

		if err := DeleteImage(ctx, db, id, imageID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
