package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tirthomj/Ticket-Management-system/internal/handler"
	"github.com/tirthomj/Ticket-Management-system/internal/model"
	"github.com/tirthomj/Ticket-Management-system/internal/service/mocks"
	apperrors "github.com/tirthomj/Ticket-Management-system/pkg/app_errors"
)

func setupShowTestRouter(mockService *mocks.BookingServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewShowHandler(mockService).RegisterRoutes(router)
	return router
}

func sampleShow() *model.Show {
	return &model.Show{
		ID:     1,
		Singer: "Arijit Singh",
		Date:   model.ShowDate{Day: 15, Month: 8, Year: 2026},
		Venue:  "National Stadium",
		Type:   "Concert",
		Price:  500,
		Seats:  10,
		Booked: map[int]struct{}{2: {}, 7: {}},
	}
}

func TestListShows(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		mockService.On("ListUpcomingShows", mock.Anything, mock.Anything).
			Return([]*model.Show{sampleShow()}, nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/shows", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []model.ShowResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "15 August, 2026", resp[0].Date)
		assert.Equal(t, 8, resp[0].AvailableSeats)
		assert.Equal(t, []int{2, 7}, resp[0].BookedSeats)
		mockService.AssertExpectations(t)
	})
}

func TestGetShow(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		mockService.On("GetShow", mock.Anything, 1).Return(sampleShow(), nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/shows/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		mockService.On("GetShow", mock.Anything, 9).Return(nil, apperrors.ErrShowNotFound).Once()

		req, _ := http.NewRequest("GET", "/api/v1/shows/9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - NonNumericID", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		req, _ := http.NewRequest("GET", "/api/v1/shows/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetShow")
	})
}

func TestCreateShow(t *testing.T) {
	createShowRequest := handler.CreateShowRequest{
		Singer: "Atif Aslam",
		Date:   "1,12,2026",
		Venue:  "City Hall",
		Type:   "Live",
		Price:  300,
		Seats:  5,
	}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		created := &model.Show{
			ID:     2,
			Singer: "Atif Aslam",
			Date:   model.ShowDate{Day: 1, Month: 12, Year: 2026},
			Venue:  "City Hall",
			Type:   "Live",
			Price:  300,
			Seats:  5,
			Booked: map[int]struct{}{},
		}
		mockService.On("AddShow", mock.Anything, mock.Anything).Return(created, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/shows", createShowRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - FreeShow", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		// 票價 0 的免費場次要能建立
		free := createShowRequest
		free.Price = 0

		created := &model.Show{
			ID:     3,
			Singer: free.Singer,
			Date:   model.ShowDate{Day: 1, Month: 12, Year: 2026},
			Venue:  free.Venue,
			Type:   free.Type,
			Price:  0,
			Seats:  free.Seats,
			Booked: map[int]struct{}{},
		}
		mockService.On("AddShow", mock.Anything, mock.Anything).Return(created, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/shows", free)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - BadDate", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		bad := createShowRequest
		bad.Date = "2026-12-01"

		req := createJSONHTTPRequest("POST", "/api/v1/shows", bad)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AddShow")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/shows", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AddShow")
	})

	t.Run("Failed - StorageUnavailable", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupShowTestRouter(mockService)

		mockService.On("AddShow", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrStorageUnavailable).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/shows", createShowRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		mockService.AssertExpectations(t)
	})
}
