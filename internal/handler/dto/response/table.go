package response

import (
	"time"

	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Occupied         bool      `json:"occupied"`
	ReservationCount int64     `json:"reservation_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TableDetailResponse struct {
	TableResponse
	Reservations []*ReservationResponse `json:"reservations"`
}

type TableAvailabilityResponse struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Occupied     bool                   `json:"occupied"`
	Available    bool                   `json:"available"`
	Reservations []*ReservationResponse `json:"reservations"`
}

func FromTableView(v *queries.TableView) *TableResponse {
	return &TableResponse{
		ID:               v.ID,
		Name:             v.Name,
		Occupied:         v.Occupied,
		ReservationCount: v.ReservationCount,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromTableViews(views []*queries.TableView) []*TableResponse {
	resps := make([]*TableResponse, len(views))
	for i, v := range views {
		resps[i] = FromTableView(v)
	}
	return resps
}

func FromTableDetailView(v *queries.TableDetailView) *TableDetailResponse {
	return &TableDetailResponse{
		TableResponse: *FromTableView(&v.TableView),
		Reservations:  FromReservationViews(v.Reservations),
	}
}

func FromTableAvailabilityViews(views []*queries.TableAvailabilityView) []*TableAvailabilityResponse {
	resps := make([]*TableAvailabilityResponse, len(views))
	for i, v := range views {
		resps[i] = &TableAvailabilityResponse{
			ID:           v.ID,
			Name:         v.Name,
			Occupied:     v.Occupied,
			Available:    v.Available,
			Reservations: FromReservationViews(v.Reservations),
		}
	}
	return resps
}
