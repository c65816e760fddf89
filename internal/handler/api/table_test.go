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

type TableHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTableCommands
	mockQueries  *queriesmock.MockTableQueries
	handler      *api.TableHandler
}

func (s *TableHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTableCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTableQueries(s.mockCtrl)
	s.handler = api.NewTableHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/tables", s.handler.CreateTable)
	s.router.GET("/tables", s.handler.ListTables)
	s.router.GET("/tables/availability", s.handler.Availability)
	s.router.GET("/tables/:id", s.handler.GetTable)
	s.router.PUT("/tables/:id", s.handler.UpdateTable)
	s.router.DELETE("/tables/:id", s.handler.DeleteTable)
	s.router.PUT("/tables/:id/occupy", s.handler.OccupyTable)
	s.router.PUT("/tables/:id/release", s.handler.ReleaseTable)
}

func (s *TableHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTableHandlerSuite(t *testing.T) {
	suite.Run(t, new(TableHandlerTestSuite))
}

func tableDetailView(id uuid.UUID, occupied bool) *queries.TableDetailView {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &queries.TableDetailView{
		TableView: queries.TableView{
			ID:        id,
			Name:      "T1",
			Occupied:  occupied,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reservations: []*queries.ReservationView{},
	}
}

func (s *TableHandlerTestSuite) TestCreate() {
	url := "/tables"
	reqBody := reqdto.CreateTableRequest{Name: "T1"}

	s.Run("success: returns 201 Created", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.CreateTableRequest{Name: "T1"}).
			Return(&commands.CreateTableResult{TableID: id}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(tableDetailView(id, false), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id.String(), body["id"])
		s.Equal(false, body["occupied"])
	})

	s.Run("error: 400 for missing name", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("name", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 for duplicate name", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrTableNameTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})
}

func (s *TableHandlerTestSuite) TestOccupancyEndpoints() {
	id := uuid.New()

	s.Run("occupy succeeds on a free table", func() {
		s.mockCommands.EXPECT().Occupy(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String()+"/occupy", nil)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("occupied", body["status"])
	})

	s.Run("occupy on an occupied table is 409", func() {
		s.mockCommands.EXPECT().Occupy(gomock.Any(), id).Return(errs.ErrTableOccupied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String()+"/occupy", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "occupied")
	})

	s.Run("release is always 200", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String()+"/release", nil)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("free", body["status"])
	})

	s.Run("occupy on unknown table is 404", func() {
		s.mockCommands.EXPECT().Occupy(gomock.Any(), id).Return(errs.ErrTableNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String()+"/occupy", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *TableHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/tables/"+id.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when orders or reservations reference the table", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(errs.ErrTableInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/tables/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "referenced")
	})
}

func (s *TableHandlerTestSuite) TestAvailability() {
	s.Run("success: defaults to the current two-hour window", func() {
		s.mockQueries.EXPECT().Availability(gomock.Any(), nil, nil).
			Return([]*queries.TableAvailabilityView{
				{ID: uuid.New(), Name: "T1", Available: true, Reservations: []*queries.ReservationView{}},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tables/availability", nil)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(true, body[0]["available"])
	})

	s.Run("success: forwards explicit window bounds", func() {
		from := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
		to := from.Add(time.Hour)
		s.mockQueries.EXPECT().
			Availability(gomock.Any(),
				gomock.Cond(func(p *time.Time) bool { return p != nil && p.Equal(from) }),
				gomock.Cond(func(p *time.Time) bool { return p != nil && p.Equal(to) })).
			Return([]*queries.TableAvailabilityView{}, nil).Times(1)

		url := "/tables/availability?from=" + from.Format(time.RFC3339) + "&to=" + to.Format(time.RFC3339)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 for an inverted window", func() {
		s.mockQueries.EXPECT().Availability(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidWindow).Times(1)

		from := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
		url := "/tables/availability?from=" + from.Format(time.RFC3339) +
			"&to=" + from.Add(-time.Hour).Format(time.RFC3339)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 for a malformed bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tables/availability?from=yesterday", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *TableHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	name := "Patio 2"
	reqBody := reqdto.UpdateTableRequest{Name: &name}

	s.Run("success: returns the updated table", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(tableDetailView(id, false), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String(), reqBody)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when occupying an occupied table via patch", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(errs.ErrTableOccupied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/tables/"+id.String(), reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}
