package controllers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/pages/orders"
)

func rowIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("tbody tr[data-id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-id")
		ids = append(ids, id)
	})
	return ids
}

func TestOrders_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/session?next=%2Forders", rec.Header().Get("Location"))
}

func TestOrders_ListPage(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	require.Equal(t, 1, doc.Find("#"+orders.TableID).Length())
	assert.Equal(t, []string{"o1", "o2", "o3"}, rowIDs(doc), "sorted by order number")

	first := doc.Find(`tr[data-id="o1"]`)
	cells := first.Find("td")
	assert.Equal(t, "1001", strings.TrimSpace(cells.Eq(0).Text()))
	assert.Equal(t, "Leo", strings.TrimSpace(cells.Eq(1).Text()))
	assert.Contains(t, cells.Eq(2).Text(), "Soup (2)")

	colors := map[string]string{}
	doc.Find("tbody tr[data-id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-id")
		colors[id], _ = s.Find("span[data-color]").Attr("data-color")
	})
	assert.Equal(t, map[string]string{"o1": "orange", "o2": "green", "o3": "brown"}, colors)

	assert.Equal(t, 1, first.Find(`[hx-post="/orders/o1/confirm"]`).Length())
	assert.Equal(t, 1, first.Find(`[hx-post="/orders/o1/cancel"]`).Length())
	assert.Equal(t, 1, first.Find(`[hx-delete="/orders/o1"]`).Length())
	assert.Equal(t, 0, doc.Find(`[hx-post="/orders/o2/confirm"]`).Length(), "confirmed orders cannot be confirmed again")
	assert.Equal(t, 1, doc.Find(`[hx-post="/orders/o2/cancel"]`).Length())
	assert.Equal(t, 0, doc.Find(`[hx-post="/orders/o3/cancel"]`).Length(), "delivered orders cannot be cancelled")

	assert.Equal(t, 3, doc.Find("[data-export] a").Length())

	trigger, _ := doc.Find("#orders-search").Attr("hx-trigger")
	assert.Equal(t, "input changed, search", trigger, "every keystroke refilters")
}

func TestOrders_ChineseSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), env.loginIn(t, "admin", "zh"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "餐厅管理")
	assert.Contains(t, body, "订单")
	assert.NotContains(t, body, "Restaurant Admin")
}

func TestOrders_SearchFragment(t *testing.T) {
	env := newTestEnv(t)
	req := htmxRequest(http.MethodGet, "/orders?q=mia", "")
	req.Header.Set("HX-Target", orders.TableID)
	rec := env.do(req, env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "<html")
	assert.Equal(t, []string{"o2"}, rowIDs(parse(t, rec)))
}

func TestOrders_SearchMatchesLineItems(t *testing.T) {
	env := newTestEnv(t)
	req := htmxRequest(http.MethodGet, "/orders?q=cake", "")
	req.Header.Set("HX-Target", orders.TableID)
	rec := env.do(req, env.login(t, "admin"))

	assert.Equal(t, []string{"o3"}, rowIDs(parse(t, rec)))
}

func TestOrders_StaffSeesNoRowActions(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), env.login(t, "staff"))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Len(t, rowIDs(doc), 3)
	assert.Equal(t, 0, doc.Find("[data-actions]").Length())
	assert.Equal(t, 3, doc.Find("[data-export] a").Length())
}

func TestOrders_Confirm(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(htmxRequest(http.MethodPost, "/orders/o1/confirm", "q="), env.login(t, "restaurant"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, order.StatusConfirmed, env.orders.updated["o1"])
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "Order confirmed")
	color, _ := parse(t, rec).Find(`tr[data-id="o1"] span[data-color]`).Attr("data-color")
	assert.Equal(t, "green", color)
}

func TestOrders_ConfirmIsLeftToBackend(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(htmxRequest(http.MethodPost, "/orders/o3/confirm", ""), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, order.StatusConfirmed, env.orders.updated["o3"], "a delivered order is still sent to the backend")
	assert.Contains(t, rec.Header().Get("HX-Trigger"), `"variant":"success"`)
}

func TestOrders_ConfirmRefusedByBackend(t *testing.T) {
	env := newTestEnv(t)
	env.orders.reject = errors.Wrap(order.ErrInvalidStatus, "backend refused")
	rec := env.do(htmxRequest(http.MethodPost, "/orders/o2/confirm", ""), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, env.orders.updated)
	trigger := rec.Header().Get("HX-Trigger")
	assert.Contains(t, trigger, `"variant":"error"`)
	assert.Contains(t, trigger, "not available for the order")
}

func TestOrders_Cancel(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(htmxRequest(http.MethodPost, "/orders/o2/cancel", ""), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, order.StatusCancelled, env.orders.updated["o2"])
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "Order cancelled")
}

func TestOrders_Delete(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(htmxRequest(http.MethodDelete, "/orders/o1", ""), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"o1"}, env.orders.deleted)
	assert.Equal(t, []string{"o2", "o3"}, rowIDs(parse(t, rec)))
}

func TestOrders_DeleteForbiddenForStaff(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(htmxRequest(http.MethodDelete, "/orders/o1", ""), env.login(t, "staff"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, env.orders.deleted)
}

func TestOrders_BackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.orders.fail = errors.New("connection refused")
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), env.login(t, "admin"))
	require.Equal(t, http.StatusOK, rec.Code)

	alert := parse(t, rec).Find(`[data-alert="error"]`)
	require.Equal(t, 1, alert.Length())
	assert.Contains(t, alert.Text(), "Something went wrong.")
}

func TestOrders_ExportCSV(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders/export?format=csv&q=leo", nil), env.login(t, "staff"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename=orders-report-"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Order ID", records[0][0])
	assert.Equal(t, "1001", records[1][0])
	assert.Equal(t, "Leo Stone", records[1][1])
}

func TestOrders_ExportUnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/orders/export?format=docx", nil), env.login(t, "admin"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, parse(t, rec).Find("[data-not-found]").Length())

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept", "application/json")
	rec = env.do(req, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}
