//go:build e2e

package table_test

import (
	"net/http"
	"testing"
	"time"

	"resto-api/tests/common/dbtest"
	"resto-api/tests/common/httptest"
	"resto-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TableSuite struct {
	e2e.SharedSuite
}

func TestTableSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TableSuite))
}

func (s *TableSuite) availability(from, to time.Time) map[string]map[string]any {
	t := s.T()
	url := "/api/tables/availability?from=" + from.Format(time.RFC3339) + "&to=" + to.Format(time.RFC3339)
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code, "Should report availability: %s", w.Body.String())

	var views []map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &views))

	byName := make(map[string]map[string]any, len(views))
	for _, v := range views {
		byName[v["name"].(string)] = v
	}
	return byName
}

func (s *TableSuite) TestAvailability() {
	s.Run("Normal case: a table is available iff free and unreserved for the window", func() {
		t := s.T()
		occupied := dbtest.CreateTestTable(t, s.DB, "T1")
		reserved := dbtest.CreateTestTable(t, s.DB, "T2")
		dbtest.CreateTestTable(t, s.DB, "T3")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/tables/"+occupied.String()+"/occupy", nil)
		require.Equal(t, http.StatusOK, w.Code)

		from := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
		to := from.Add(2 * time.Hour)
		dbtest.CreateTestReservation(t, s.DB, reserved, "Alice", from.Add(time.Hour), from.Add(3*time.Hour))

		byName := s.availability(from, to)
		require.Len(t, byName, 3)

		require.False(t, byName["T1"]["available"].(bool), "occupied table is never available")
		require.True(t, byName["T1"]["occupied"].(bool))

		require.False(t, byName["T2"]["available"].(bool), "overlapping reservation blocks the window")
		require.False(t, byName["T2"]["occupied"].(bool))
		require.Len(t, byName["T2"]["reservations"].([]any), 1)

		require.True(t, byName["T3"]["available"].(bool))
		require.Empty(t, byName["T3"]["reservations"].([]any))
	})

	s.Run("Normal case: a window touching a reservation boundary does not overlap", func() {
		t := s.T()
		tableID := dbtest.CreateTestTable(t, s.DB, "T1")

		resStart := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
		resEnd := resStart.Add(2 * time.Hour)
		dbtest.CreateTestReservation(t, s.DB, tableID, "Alice", resStart, resEnd)

		// [resEnd, resEnd+1h) starts exactly where the reservation ends.
		byName := s.availability(resEnd, resEnd.Add(time.Hour))
		require.True(t, byName["T1"]["available"].(bool))
		require.Empty(t, byName["T1"]["reservations"].([]any))

		// Shift the window back one second and the reservation covers it.
		byName = s.availability(resEnd.Add(-time.Second), resEnd.Add(time.Hour))
		require.False(t, byName["T1"]["available"].(bool))
		require.Len(t, byName["T1"]["reservations"].([]any), 1)
	})

	s.Run("Error case: inverted window is rejected", func() {
		t := s.T()
		dbtest.CreateTestTable(t, s.DB, "T1")

		from := time.Now().Add(24 * time.Hour).UTC()
		url := "/api/tables/availability?from=" + from.Format(time.RFC3339) +
			"&to=" + from.Add(-time.Hour).Format(time.RFC3339)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
