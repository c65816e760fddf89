//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"resto-api/tests/common/dbtest"
	"resto-api/tests/common/httptest"
	"resto-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const ordersURL = "/api/orders"

type OrderSuite struct {
	e2e.SharedSuite
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderSuite))
}

func (s *OrderSuite) createDineInOrder(tableID, itemID uuid.UUID, clientName string) map[string]any {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
		"client_name": clientName,
		"kind":        "dine_in",
		"table_id":    tableID,
		"lines": []map[string]any{
			{"menu_item_id": itemID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, "Should create order: %s", w.Body.String())

	var created map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

func (s *OrderSuite) TestCreateOrder() {
	s.Run("Normal case: dine-in order occupies the table and snapshots prices", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		pizza := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)
		espresso := dbtest.CreateTestMenuItem(t, s.DB, "Espresso", 300)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Alice",
			"kind":        "dine_in",
			"table_id":    tableID,
			"lines": []map[string]any{
				{"menu_item_id": pizza, "quantity": 2},
				{"menu_item_id": espresso, "quantity": 1},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, "Should create order: %s", w.Body.String())

		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, float64(2800), created["total_cents"])
		require.Equal(t, "pending", created["status"])
		require.True(t, dbtest.TableOccupied(t, s.DB, tableID), "dine-in creation occupies the table")

		wantLines := []map[string]any{
			{"name": "Margherita", "quantity": float64(2), "unit_price_cents": float64(1250), "subtotal_cents": float64(2500)},
			{"name": "Espresso", "quantity": float64(1), "unit_price_cents": float64(300), "subtotal_cents": float64(300)},
		}
		gotLines := []map[string]any{}
		for _, l := range created["lines"].([]any) {
			line := l.(map[string]any)
			delete(line, "menu_item_id")
			gotLines = append(gotLines, line)
		}
		sortByName := cmpopts.SortSlices(func(a, b map[string]any) bool {
			return a["name"].(string) < b["name"].(string)
		})
		require.Empty(t, cmp.Diff(wantLines, gotLines, sortByName))
	})

	s.Run("Normal case: lines naming the same item are merged into one", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		pizza := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Alice",
			"kind":        "dine_in",
			"table_id":    tableID,
			"lines": []map[string]any{
				{"menu_item_id": pizza, "quantity": 2},
				{"menu_item_id": pizza, "quantity": 1},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, "Should create order: %s", w.Body.String())

		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, float64(3750), created["total_cents"])

		lines := created["lines"].([]any)
		require.Len(t, lines, 1)
		require.Equal(t, float64(3), lines[0].(map[string]any)["quantity"])
	})

	s.Run("Error case: second dine-in order on the occupied table is rejected", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		s.createDineInOrder(tableID, itemID, "Alice")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Bob",
			"kind":        "dine_in",
			"table_id":    tableID,
			"lines":       []map[string]any{{"menu_item_id": itemID, "quantity": 1}},
		})
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Reservation guard: holder may seat, others may not", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		now := time.Now().UTC()
		dbtest.CreateTestReservation(t, s.DB, tableID, "Alice", now.Add(-time.Hour), now.Add(time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Bob",
			"kind":        "dine_in",
			"table_id":    tableID,
			"lines":       []map[string]any{{"menu_item_id": itemID, "quantity": 1}},
		})
		require.Equal(t, http.StatusConflict, w.Code, "another client cannot take a reserved table")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Alice",
			"kind":        "dine_in",
			"table_id":    tableID,
			"lines":       []map[string]any{{"menu_item_id": itemID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, "the reservation holder seats into their own window: %s", w.Body.String())
	})

	s.Run("Normal case: takeaway never binds nor occupies a table", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, map[string]any{
			"client_name": "Bob",
			"kind":        "takeaway",
			"table_id":    tableID,
			"lines":       []map[string]any{{"menu_item_id": itemID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Nil(t, created["table_id"])
		require.False(t, dbtest.TableOccupied(t, s.DB, tableID))
	})
}

func (s *OrderSuite) TestPriceSnapshotImmunity() {
	s.Run("Normal case: menu price changes do not touch existing orders", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)
		require.Equal(t, float64(2500), created["total_cents"])

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/menu/"+itemID.String(), map[string]any{
			"unit_price_cents": 9999,
		})
		require.Equal(t, http.StatusOK, w.Code, "Should update menu price: %s", w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+orderID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Equal(t, float64(2500), fetched["total_cents"], "total reflects the snapshot, not current prices")
	})
}

func (s *OrderSuite) TestUpdateOrder() {
	s.Run("Normal case: completing the order frees the table", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, ordersURL+"/"+orderID, map[string]any{
			"status": "done",
		})
		require.Equal(t, http.StatusOK, w.Code, "Should update order: %s", w.Body.String())
		require.False(t, dbtest.TableOccupied(t, s.DB, tableID), "done releases the table")

		// The binding survives for history.
		var fetched map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Equal(t, tableID.String(), fetched["table_id"])
	})

	s.Run("Normal case: moving a pending order swaps occupancy atomically", func() {
		t := s.T()
		table1 := dbtest.CreateTestTable(t, s.DB, "T1")
		table2 := dbtest.CreateTestTable(t, s.DB, "T2")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(table1, itemID, "Alice")
		orderID := created["id"].(string)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, ordersURL+"/"+orderID, map[string]any{
			"table_id": table2,
		})
		require.Equal(t, http.StatusOK, w.Code, "Should rebind order: %s", w.Body.String())
		require.False(t, dbtest.TableOccupied(t, s.DB, table1), "the old table is freed")
		require.True(t, dbtest.TableOccupied(t, s.DB, table2), "the new table is taken")
	})

	s.Run("Normal case: switching to takeaway drops the binding and frees the table", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, ordersURL+"/"+orderID, map[string]any{
			"kind": "takeaway",
		})
		require.Equal(t, http.StatusOK, w.Code, "Should switch kind: %s", w.Body.String())
		require.False(t, dbtest.TableOccupied(t, s.DB, tableID))

		var fetched map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Nil(t, fetched["table_id"])
	})
}

func (s *OrderSuite) TestDeleteOrder() {
	s.Run("Normal case: deleting a pending dine-in order frees its table", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, ordersURL+"/"+orderID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.False(t, dbtest.TableOccupied(t, s.DB, tableID))
	})
}

func (s *OrderSuite) TestDeleteTableGuard() {
	s.Run("Error case: a table referenced by an order cannot be deleted", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		s.createDineInOrder(tableID, itemID, "Alice")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/tables/"+tableID.String(), nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func (s *OrderSuite) TestGenerateInvoice() {
	s.Run("Normal case: invoicing marks the order paid and frees the table", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)
		invoiceURL := fmt.Sprintf("%s/%s/invoice", ordersURL, orderID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, invoiceURL, nil)
		require.Equal(t, http.StatusOK, w.Code, "Should generate invoice: %s", w.Body.String())

		var invoice map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &invoice))
		require.Equal(t, "invoice_"+orderID+".pdf", invoice["filename"])
		require.Equal(t, float64(2500), invoice["total_cents"])

		id := uuid.MustParse(orderID)
		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, id))
		require.False(t, dbtest.TableOccupied(t, s.DB, tableID))

		// Re-issuing for a paid order just serves the document again.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, invoiceURL, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, id))
	})

	s.Run("Normal case: download=true streams the PDF", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		itemID := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1250)

		created := s.createDineInOrder(tableID, itemID, "Alice")
		orderID := created["id"].(string)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s/invoice?download=true", ordersURL, orderID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		require.True(t, len(w.Body.Bytes()) > 0, "PDF body should not be empty")
	})
}
