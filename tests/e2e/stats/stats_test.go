//go:build e2e

package stats_test

import (
	"net/http"
	"testing"

	"resto-api/tests/common/dbtest"
	"resto-api/tests/common/httptest"
	"resto-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StatsSuite struct {
	e2e.SharedSuite
}

func TestStatsSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StatsSuite))
}

func (s *StatsSuite) placeOrder(tableID, itemID uuid.UUID, clientName string, quantity int) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders", map[string]any{
		"client_name": clientName,
		"kind":        "dine_in",
		"table_id":    tableID,
		"lines":       []map[string]any{{"menu_item_id": itemID, "quantity": quantity}},
	})
	require.Equal(t, http.StatusCreated, w.Code, "Should create order: %s", w.Body.String())

	// Free the table so the next order can take it.
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/tables/"+tableID.String()+"/release", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func (s *StatsSuite) TestRevenueStats() {
	s.Run("Normal case: revenue aggregates come from line snapshots", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		pizza := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1000)

		s.placeOrder(tableID, pizza, "Alice", 2)
		s.placeOrder(tableID, pizza, "Bob", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/stats/revenue", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &stats))
		require.Equal(t, float64(3000), stats["total_cents"])

		topItems := stats["top_items"].([]any)
		require.Len(t, topItems, 1)
		top := topItems[0].(map[string]any)
		require.Equal(t, "Margherita", top["name"])
		require.Equal(t, float64(3), top["units_sold"])
	})

	s.Run("Normal case: monthly histogram zero-fills six months", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/stats/monthly", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var points []map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &points))
		require.Len(t, points, 6, "one point per month even with no orders")
		for _, p := range points {
			require.Equal(t, float64(0), p["revenue_cents"])
		}
	})
}

func (s *StatsSuite) TestClientAggregates() {
	s.Run("Normal case: clients are aggregated from their orders", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		pizza := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1000)

		s.placeOrder(tableID, pizza, "Alice", 2)
		s.placeOrder(tableID, pizza, "Alice", 1)
		s.placeOrder(tableID, pizza, "Bob", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/clients", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var clients []map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &clients))
		require.Len(t, clients, 2)

		byName := map[string]map[string]any{}
		for _, c := range clients {
			byName[c["name"].(string)] = c
		}
		require.Equal(t, float64(2), byName["Alice"]["order_count"])
		require.Equal(t, float64(3000), byName["Alice"]["total_spent_cents"])
		require.Equal(t, float64(1), byName["Bob"]["order_count"])
	})

	s.Run("Normal case: client search matches substrings", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")
		pizza := dbtest.CreateTestMenuItem(t, s.DB, "Margherita", 1000)

		s.placeOrder(tableID, pizza, "Alice Smith", 1)
		s.placeOrder(tableID, pizza, "Bob Jones", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/clients/search?term=smi", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var found []map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &found))
		require.Len(t, found, 1)
		require.Equal(t, "Alice Smith", found[0]["name"])
	})
}
