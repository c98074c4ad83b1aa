package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/handler"
)

type mockSchoolYearService struct {
	active    *dto.SchoolYearResponse
	deleteErr error
}

func (m *mockSchoolYearService) List(_ context.Context) ([]dto.SchoolYearResponse, error) {
	return []dto.SchoolYearResponse{{ID: 1, Name: "2025-2026"}}, nil
}

func (m *mockSchoolYearService) GetByID(_ context.Context, id uint) (*dto.SchoolYearResponse, error) {
	return &dto.SchoolYearResponse{ID: id, Name: "2025-2026"}, nil
}

func (m *mockSchoolYearService) GetActive(_ context.Context) (*dto.SchoolYearResponse, error) {
	if m.active == nil {
		return nil, apperr.New(apperr.KindNotFound, "no active school year")
	}
	return m.active, nil
}

func (m *mockSchoolYearService) Create(_ context.Context, req dto.SchoolYearCreateRequest) (*dto.SchoolYearResponse, error) {
	return &dto.SchoolYearResponse{ID: 2, Name: req.Name, IsActive: req.IsActive}, nil
}

func (m *mockSchoolYearService) SetActive(_ context.Context, id uint) (*dto.SchoolYearResponse, error) {
	return &dto.SchoolYearResponse{ID: id, IsActive: true}, nil
}

func (m *mockSchoolYearService) Delete(_ context.Context, id uint) error {
	return m.deleteErr
}

func newSchoolYearApp(svc *mockSchoolYearService) *fiber.App {
	app := fiber.New()
	handler.NewSchoolYearHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/school-years"))
	return app
}

func TestSchoolYearHandler_GetActiveMissing(t *testing.T) {
	app := newSchoolYearApp(&mockSchoolYearService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/school-years/active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSchoolYearHandler_GetActive(t *testing.T) {
	svc := &mockSchoolYearService{
		active: &dto.SchoolYearResponse{ID: 4, Name: "2025-2026", IsActive: true, StartDate: time.Now()},
	}
	app := newSchoolYearApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/school-years/active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.SchoolYearResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, uint(4), response.Data.ID)
	require.True(t, response.Data.IsActive)
}

func TestSchoolYearHandler_DeleteProtectedYear(t *testing.T) {
	svc := &mockSchoolYearService{
		deleteErr: apperr.New(apperr.KindValidation, "the active school year cannot be deleted"),
	}
	app := newSchoolYearApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/school-years/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSchoolYearHandler_InvalidID(t *testing.T) {
	app := newSchoolYearApp(&mockSchoolYearService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/school-years/not-a-number", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
