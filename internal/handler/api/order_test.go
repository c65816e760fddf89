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

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockInvoices *commandsmock.MockInvoiceCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockInvoices = commandsmock.NewMockInvoiceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockInvoices, s.mockQueries)

	s.router.POST("/orders", s.handler.CreateOrder)
	s.router.GET("/orders", s.handler.ListOrders)
	s.router.GET("/orders/client/:name", s.handler.ListClientOrders)
	s.router.GET("/orders/:id", s.handler.GetOrder)
	s.router.PUT("/orders/:id", s.handler.UpdateOrder)
	s.router.DELETE("/orders/:id", s.handler.DeleteOrder)
	s.router.GET("/orders/:id/invoice", s.handler.GenerateInvoice)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func orderView(id uuid.UUID) *queries.OrderView {
	tableID := uuid.New()
	tableName := "T1"
	placedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	return &queries.OrderView{
		ID:         id,
		ClientName: "Alice",
		Kind:       "dine_in",
		TableID:    &tableID,
		TableName:  &tableName,
		Status:     "pending",
		TotalCents: 3300,
		PlacedAt:   placedAt,
		Lines: []*queries.OrderLineView{
			{MenuItemID: uuid.New(), Name: "Margherita", Quantity: 2, UnitPriceCents: 1250, SubtotalCents: 2500},
			{MenuItemID: uuid.New(), Name: "Espresso", Quantity: 1, UnitPriceCents: 800, SubtotalCents: 800},
		},
		CreatedAt: placedAt,
		UpdatedAt: placedAt,
	}
}

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/orders"
	tableID := uuid.New()
	reqBody := reqdto.CreateOrderRequest{
		ClientName: "Alice",
		Kind:       "dine_in",
		TableID:    &tableID,
		Lines: []reqdto.OrderLineRequest{
			{MenuItemID: uuid.New(), Quantity: 2},
		},
	}

	s.Run("success: returns 201 with the snapshotted total", func() {
		view := orderView(uuid.New())
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&commands.CreateOrderResult{OrderID: view.ID, TotalCents: view.TotalCents}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body["id"])
		s.Equal(float64(3300), body["total_cents"])
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing client_name", mutate: testutil.Field("client_name", nil)},
			{name: "unknown kind", mutate: testutil.Field("kind", "delivery")},
			{name: "missing lines", mutate: testutil.Field("lines", nil)},
			{name: "empty lines", mutate: testutil.Field("lines", []any{})},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 when the table is occupied", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrTableOccupied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "occupied")
	})

	s.Run("error: 409 when another client holds a covering reservation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrTableReserved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "reserved")
	})

	s.Run("error: 400 for dine-in without a table", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrTableRequired).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("table_id", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "table")
	})

	s.Run("error: 404 for an unknown menu item", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrMenuItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Menu item")
	})
}

func (s *OrderHandlerTestSuite) TestClientHistory() {
	s.Run("exact match by default", func() {
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), "Alice", false).
			Return([]*queries.OrderView{orderView(uuid.New())}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/client/Alice", nil)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("partial match when requested", func() {
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), "Ali", true).
			Return([]*queries.OrderView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/client/Ali?match=partial", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *OrderHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	status := "done"
	reqBody := reqdto.PatchOrderRequest{Status: &status}

	s.Run("success: returns the updated order", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(orderView(id), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/orders/"+id.String(), reqBody)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 for an unknown status value", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("status", "cancelled"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/orders/"+id.String(), requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 when rebinding to an occupied table", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(errs.ErrTableOccupied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/orders/"+id.String(), reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *OrderHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/orders/"+id.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown order", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(errs.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/orders/"+id.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *OrderHandlerTestSuite) TestGenerateInvoice() {
	id := uuid.New()
	result := &commands.InvoiceResult{
		Filename:   "invoice_" + id.String() + ".pdf",
		Path:       "/tmp/invoices/invoice_" + id.String() + ".pdf",
		TotalCents: 3300,
		PDF:        []byte("%PDF-1.7 fake"),
	}

	s.Run("success: returns invoice metadata", func() {
		s.mockInvoices.EXPECT().Generate(gomock.Any(), id).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String()+"/invoice", nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(result.Filename, body["filename"])
		s.Equal(float64(3300), body["total_cents"])
	})

	s.Run("success: streams the PDF when download=true", func() {
		s.mockInvoices.EXPECT().Generate(gomock.Any(), id).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String()+"/invoice?download=true", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/pdf", rec.Header().Get("Content-Type"))
		s.Contains(rec.Header().Get("Content-Disposition"), result.Filename)
		s.Equal(result.PDF, rec.Body.Bytes())
	})

	s.Run("error: 404 for unknown order", func() {
		s.mockInvoices.EXPECT().Generate(gomock.Any(), id).
			Return(nil, errs.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String()+"/invoice", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
