package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/milsabores/pasteleria/core/cart"
	"github.com/milsabores/pasteleria/core/order"
	"github.com/milsabores/pasteleria/core/product"
	"github.com/milsabores/pasteleria/core/user"
	"github.com/milsabores/pasteleria/validate"
)

type cartTest struct {
	*TestEnv
}

func TestCartCheckout(t *testing.T) {
	env, err := NewTestEnv(t, "cart_checkout_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &cartTest{env}

	prd, v := ct.seedCatalog(t, 8000, 10000, 3)

	env.Login(t, env.UserEmail, env.UserPass)

	// Same variant twice must merge into one line.
	ct.addItemOK(t, prd.ID, v.ID)
	view := ct.addItemOK(t, prd.ID, v.ID)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", view.Items)
	}

	// The bare product is a distinct line from its variant.
	view = ct.addItemOK(t, prd.ID, "")
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %+v", view.Items)
	}

	view = ct.removeItemOK(t, prd.ID, "")
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line after removal, got %+v", view.Items)
	}

	if sum := ct.applyDiscount(t, "NO-ES-EL-CODIGO", false); sum.Total != 20000 {
		t.Fatalf("wrong code must not discount: %+v", sum)
	}
	if sum := ct.applyDiscount(t, "pms50agnos", true); sum.Total != 18000 || sum.Discount != 2000 {
		t.Fatalf("expected 10%% off 20000, got %+v", sum)
	}

	ord := ct.checkoutOK(t)
	if ord.Total != 18000 {
		t.Fatalf("order total = %d, want 18000", ord.Total)
	}
	if len(ord.Items) != 1 || ord.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", ord.Items)
	}
	if ord.Status != order.Completed {
		t.Fatalf("order status = %s, want %s", ord.Status, order.Completed)
	}

	// Checkout clears the cart and reserves the stock.
	if view := ct.showCart(t); len(view.Items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", view.Items)
	}
	left, err := product.FetchVariant(context.Background(), env.DB, prd.ID, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if left.Stock != 1 {
		t.Fatalf("variant stock = %d, want 1", left.Stock)
	}

	// An empty cart cannot be checked out.
	ct.checkoutFail(t)

	// Two more units exceed the single remaining one; the failed
	// checkout must leave the cart intact.
	ct.addItemOK(t, prd.ID, v.ID)
	ct.addItemOK(t, prd.ID, v.ID)
	ct.checkoutFail(t)
	if view := ct.showCart(t); len(view.Items) != 1 {
		t.Fatalf("failed checkout lost the cart: %+v", view.Items)
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	env, err := NewTestEnv(t, "cart_anon_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &cartTest{env}
	prd, v := ct.seedCatalog(t, 8000, 10000, 3)

	// Browsing the cart works without a session user.
	ct.addItemOK(t, prd.ID, v.ID)

	w := ct.do(t, http.MethodPost, "/orders", nil)
	defer w.Body.Close()

	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous checkout: status code %s, want 401", w.Status)
	}
}

func TestCheckoutDeletedBuyer(t *testing.T) {
	env, err := NewTestEnv(t, "cart_buyer_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &cartTest{env}
	prd, v := ct.seedCatalog(t, 8000, 10000, 3)

	env.Login(t, env.UserEmail, env.UserPass)
	ct.addItemOK(t, prd.ID, v.ID)

	// The session survives the account; checkout must not.
	ctx := context.Background()
	buyer, err := user.FetchByEmail(ctx, env.DB, env.UserEmail)
	if err != nil {
		t.Fatal(err)
	}
	if err := user.Delete(ctx, env.DB, buyer.ID); err != nil {
		t.Fatal(err)
	}

	w := ct.do(t, http.MethodPost, "/orders", nil)
	defer w.Body.Close()

	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("checkout with deleted account: status code %s, want 401", w.Status)
	}
}

func (ct *cartTest) seedCatalog(t *testing.T, basePrice, variantPrice, stock int) (product.Product, product.Variant) {
	t.Helper()

	now := time.Now().UTC()
	prd := product.Product{
		ID:        validate.GenerateID(),
		Name:      "Torta Cuadrada de Chocolate",
		BasePrice: basePrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v := product.Variant{
		ID:        validate.GenerateID(),
		ProductID: prd.ID,
		Name:      "20 personas",
		Price:     variantPrice,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx := context.Background()
	if err := product.Create(ctx, ct.DB, prd); err != nil {
		t.Fatal(err)
	}
	if err := product.CreateVariant(ctx, ct.DB, v); err != nil {
		t.Fatal(err)
	}
	return prd, v
}

func (ct *cartTest) addItemOK(t *testing.T, productID, variantID string) cart.View {
	t.Helper()

	body := map[string]string{"productoId": productID}
	if variantID != "" {
		body["varianteId"] = variantID
	}

	w := ct.do(t, http.MethodPut, "/cart/items", body)
	if w.StatusCode != http.StatusOK {
		w.Body.Close()
		t.Fatalf("adding cart item: status code %s", w.Status)
	}

	var view cart.View
	decode(t, w, &view)
	return view
}

func (ct *cartTest) removeItemOK(t *testing.T, productID, variantID string) cart.View {
	t.Helper()

	path := "/cart/items/" + productID
	if variantID != "" {
		path += "?variante=" + variantID
	}

	w := ct.do(t, http.MethodDelete, path, nil)
	if w.StatusCode != http.StatusOK {
		w.Body.Close()
		t.Fatalf("removing cart item: status code %s", w.Status)
	}

	var view cart.View
	decode(t, w, &view)
	return view
}

func (ct *cartTest) showCart(t *testing.T) cart.View {
	t.Helper()

	w := ct.do(t, http.MethodGet, "/cart", nil)
	if w.StatusCode != http.StatusOK {
		w.Body.Close()
		t.Fatalf("fetching cart: status code %s", w.Status)
	}

	var view cart.View
	decode(t, w, &view)
	return view
}

func (ct *cartTest) applyDiscount(t *testing.T, code string, wantApplied bool) cart.Summary {
	t.Helper()

	w := ct.do(t, http.MethodPost, "/cart/discount", map[string]string{"codigo": code})
	if w.StatusCode != http.StatusOK {
		w.Body.Close()
		t.Fatalf("applying discount: status code %s", w.Status)
	}

	var resp struct {
		Applied bool         `json:"aplicado"`
		Summary cart.Summary `json:"resumen"`
	}
	decode(t, w, &resp)

	if resp.Applied != wantApplied {
		t.Fatalf("discount applied = %v, want %v", resp.Applied, wantApplied)
	}
	return resp.Summary
}

func (ct *cartTest) checkoutOK(t *testing.T) order.Order {
	t.Helper()

	w := ct.do(t, http.MethodPost, "/orders", nil)
	if w.StatusCode != http.StatusCreated {
		w.Body.Close()
		t.Fatalf("checkout: status code %s", w.Status)
	}

	var ord order.Order
	decode(t, w, &ord)
	return ord
}

func (ct *cartTest) checkoutFail(t *testing.T) {
	t.Helper()

	w := ct.do(t, http.MethodPost, "/orders", nil)
	defer w.Body.Close()

	if w.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("checkout: status code %s, want 422", w.Status)
	}
}
