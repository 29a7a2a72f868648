package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core"
)

func form(kv ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v.Encode()
}

func TestEditorPageRendersSeeds(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.get("/editors/products")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	for _, want := range []string{"Product 1", "Product 2", "Product 3", "Product Name", ">Submit<", `id="editor"`} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "Confirm Delete")
	assert.Contains(t, body, `class="active"`)

	rr = b.get("/editors/cashflow")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Loan Repayment")
	assert.Contains(t, rr.Body.String(), `<input type="date" name="date"`)
}

func TestEditorErrors(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown kind page", http.MethodGet, "/editors/invoices", http.StatusNotFound},
		{"unknown kind action", http.MethodPost, "/editors/invoices/submit", http.StatusNotFound},
		{"unknown kind api", http.MethodGet, "/api/editors/invoices", http.StatusNotFound},
		{"malformed edit id", http.MethodPost, "/editors/products/edit/abc", http.StatusBadRequest},
		{"malformed delete id", http.MethodPost, "/editors/products/delete/1x", http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/editors/products/submit", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := b.do(tt.method, tt.path, "", true)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestSubmitCreatesEntity(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/products/submit", form("name", "Product 4", "price", "400", "description", "fresh"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Product 4")
	n := toast(t, rr)
	assert.Equal(t, "success", n["type"])
	assert.Equal(t, "Product added successfully!", n["message"])
	assert.Equal(t, float64(3000), n["duration"])
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"editor:changed"`)

	s := b.snapshot("products")
	assert.Equal(t, []int64{1, 2, 3, fixedNow.UnixMilli()}, s.ids())
	assert.Equal(t, []string{"Product 4", "400", "fresh"}, s.Rows[3].Cells)
	assert.Equal(t, "", s.formValue("name"), "draft reset")
	assert.Equal(t, "create", s.Phase)
}

func TestSubmitMissingRequiredField(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/categories/submit", form("name", "   ", "description", "kept"))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	n := toast(t, rr)
	assert.Equal(t, "error", n["type"])
	assert.Equal(t, core.MsgAllFieldsRequired, n["message"])
	assert.Contains(t, rr.Body.String(), "kept", "panel re-rendered with the draft")

	s := b.snapshot("categories")
	assert.Len(t, s.Rows, 3)
	assert.Equal(t, "kept", s.formValue("description"))
}

func TestEditFlow(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/products/edit/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Product 2"`)
	assert.Contains(t, rr.Body.String(), ">Update<")
	assert.Nil(t, toast(t, rr))

	s := b.snapshot("products")
	assert.Equal(t, "edit", s.Phase)
	assert.Equal(t, int64(2), s.EditingID)

	rr = b.post("/editors/products/submit", form("name", "Product 2", "price", "250", "description", "Product 2 description"))
	require.Equal(t, http.StatusOK, rr.Code)
	n := toast(t, rr)
	assert.Equal(t, "info", n["type"])
	assert.Equal(t, "Product updated successfully!", n["message"])

	s = b.snapshot("products")
	assert.Equal(t, []int64{1, 2, 3}, s.ids())
	assert.Equal(t, "250", s.Rows[1].Cells[1])
	assert.Equal(t, "create", s.Phase)
	assert.Equal(t, "Submit", s.SubmitLabel)
}

func TestEditUnknownIDIsNoop(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/products/edit/999", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, toast(t, rr))
	assert.Equal(t, "create", b.snapshot("products").Phase)
}

func TestDeleteFlow(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/sales/delete/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Are you sure you want to delete this sale?")
	assert.Contains(t, rr.Body.String(), `hx-post="/editors/sales/delete/confirm"`)

	s := b.snapshot("sales")
	assert.True(t, s.Dialog.Open)
	assert.Equal(t, int64(1), s.Dialog.TargetID)
	assert.Len(t, s.Rows, 3)

	rr = b.post("/editors/sales/delete/confirm", "")
	require.Equal(t, http.StatusOK, rr.Code)
	n := toast(t, rr)
	assert.Equal(t, "error", n["type"])
	assert.Equal(t, "Sale deleted successfully!", n["message"])
	assert.NotContains(t, rr.Body.String(), "Confirm Delete")

	s = b.snapshot("sales")
	assert.Equal(t, []int64{2, 3}, s.ids())
	assert.False(t, s.Dialog.Open)
}

func TestDeleteSeverityFollowsEditor(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	b.post("/editors/suppliers/delete/2", "")
	rr := b.post("/editors/suppliers/delete/confirm", "")

	assert.Equal(t, http.StatusOK, rr.Code, "a delete toast of kind error is not a failed request")
	assert.Equal(t, "error", toast(t, rr)["type"])
	assert.Equal(t, []int64{1, 3}, b.snapshot("suppliers").ids())
}

func TestConfirmDeleteOfVanishedRowStillToasts(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	b.post("/editors/categories/delete/42", "")
	rr := b.post("/editors/categories/delete/confirm", "")

	require.Equal(t, http.StatusOK, rr.Code)
	n := toast(t, rr)
	assert.Equal(t, "warning", n["type"])
	assert.Equal(t, "Category deleted!", n["message"])

	s := b.snapshot("categories")
	assert.Equal(t, []int64{1, 2, 3}, s.ids())
	assert.False(t, s.Dialog.Open)
}

func TestCancelDelete(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	b.post("/editors/expenses/edit/2", "")
	b.post("/editors/expenses/delete/1", "")
	rr := b.post("/editors/expenses/delete/cancel", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, toast(t, rr))

	s := b.snapshot("expenses")
	assert.False(t, s.Dialog.Open)
	assert.Equal(t, "create", s.Phase)
	assert.Equal(t, "Submit", s.SubmitLabel)
	assert.Equal(t, "Transport", s.formValue("category"))
	assert.Len(t, s.Rows, 3)
}

func TestDraftUpdate(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.post("/editors/categories/draft", form("name", "Toys ", "unknown", "x"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	s := b.snapshot("categories")
	assert.Equal(t, "Toys ", s.formValue("name"))
	assert.Len(t, s.Rows, 3)
}

func TestDraftAcceptsJSON(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	req := httptest.NewRequest(http.MethodPost, "/editors/sales/draft", strings.NewReader(`{"quantity": 3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HX-Request", "true")
	b.get("/")
	req.AddCookie(b.cookie)
	rr := httptest.NewRecorder()
	b.srv.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "3", b.snapshot("sales").formValue("quantity"))
}

func TestPlainFormPostRedirects(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	rr := b.do(http.MethodPost, "/editors/categories/submit", form("name", "Toys", "description", "Games and puzzles"), false)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/editors/categories", rr.Header().Get("Location"))
	assert.Len(t, b.snapshot("categories").Rows, 4)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := newBrowser(t, srv)
	bob := newBrowser(t, srv)

	alice.post("/editors/products/delete/1", "")
	alice.post("/editors/products/delete/confirm", "")

	assert.Len(t, alice.snapshot("products").Rows, 2)
	assert.Len(t, bob.snapshot("products").Rows, 3)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
}

func TestNotificationStream(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	b := newBrowser(t, srv)
	b.get("/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	header := http.Header{}
	header.Add("Cookie", SessionCookie+"="+b.cookie.Value)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/notifications",
		&websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)
	defer conn.CloseNow()

	rr := b.post("/editors/categories/submit", form("name", "Toys", "description", "Games and puzzles"))
	require.Equal(t, http.StatusOK, rr.Code)

	var got core.Notification
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	assert.Equal(t, core.Success("Category added!"), got)
}
