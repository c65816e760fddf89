//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"resto-api/internal/handler/api"
	reqdto "resto-api/internal/handler/dto/request"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/usecase/commands"
	"resto-api/internal/usecase/queries"
	"resto-api/tests/common/httptest"
	"resto-api/tests/common/testutil"
	commandsmock "resto-api/tests/mock/commands"
	queriesmock "resto-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListReservations)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PUT("/reservations/:id", s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", s.handler.DeleteReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func reservationView(id uuid.UUID) *queries.ReservationView {
	starts := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	return &queries.ReservationView{
		ID:         id,
		TableID:    uuid.New(),
		TableName:  "T1",
		ClientName: "Alice",
		StartsAt:   starts,
		EndsAt:     starts.Add(2 * time.Hour),
		CreatedAt:  starts.Add(-24 * time.Hour),
		UpdatedAt:  starts.Add(-24 * time.Hour),
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	reqBody := reqdto.UpsertReservationRequest{
		TableID:    uuid.New(),
		ClientName: "Alice",
		StartsAt:   time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}
	view := reservationView(uuid.New())
	result := &commands.UpsertReservationResult{ReservationID: view.ID}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body["id"])
		s.Equal("Alice", body["client_name"])
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing table_id", mutate: testutil.Field("table_id", nil)},
			{name: "missing client_name", mutate: testutil.Field("client_name", nil)},
			{name: "missing starts_at", mutate: testutil.Field("starts_at", nil)},
			{name: "malformed starts_at", mutate: testutil.Field("starts_at", "tonight")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 Conflict when the window overlaps", func() {
		s.mockCommands.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrReservationConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "conflicts")
	})

	s.Run("error: 404 Not Found for unknown table", func() {
		s.mockCommands.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrTableNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Table not found")
	})

	s.Run("error: 400 Bad Request for an inverted window", func() {
		s.mockCommands.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidWindow).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "window")
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := reservationView(uuid.New())

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body["id"])
	})

	s.Run("error: 404 for unknown reservation", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: passes day and client filters through", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Cond(func(f queries.ReservationFilter) bool {
				return f.Day != nil && f.Day.Format("2006-01-02") == "2026-03-14" && f.ClientName == "Ali"
			})).
			Return([]*queries.ReservationView{reservationView(uuid.New())}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?date=2026-03-14&client=Ali", nil)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: 400 for malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?date=14-03-2026", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	view := reservationView(uuid.New())
	newName := "Bob"
	reqBody := reqdto.PatchReservationRequest{ClientName: &newName}

	s.Run("success: returns the updated reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+view.ID.String(), reqBody)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when the patched window conflicts", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any()).
			Return(errs.ErrReservationConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+view.ID.String(), reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown reservation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
