package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taproom/internal/commit/handler/mocks"
	"taproom/internal/commit/models"
	"taproom/internal/record"
	dErrors "taproom/pkg/domain-errors"
	"taproom/pkg/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, nil, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func TestHandleSubmit(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().Submit(gomock.Any(), models.SubmitRequest{
		Message: "Feliz año!",
		Alias:   "ana",
		Beer:    "ipa",
	}).Return(record.Record{
		Hash:      "abc1234",
		Tap:       record.TapIPA,
		Alias:     "ana",
		Message:   "Feliz año!",
		CreatedAt: "2026-08-23T12:00:00Z",
		Status:    record.StatusPending,
	}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits",
		models.SubmitRequest{Message: "Feliz año!", Alias: "ana", Beer: "ipa"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[models.SubmitResponse](t, rr)
	assert.Equal(t, "abc1234", resp.Hash)
	assert.Equal(t, "ipa", resp.Tap)
	assert.Equal(t, record.TapIPA.Caption(), resp.Caption)
	assert.Equal(t, "Feliz año!", resp.Message)
	assert.Equal(t, "pending", resp.Status)
	assert.Len(t, resp.Hash, record.HashLen)
}

func TestHandleSubmitEmptyMessage(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(record.Record{}, dErrors.New(dErrors.CodeBadRequest, "El mensaje del commit es requerido."))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits", models.SubmitRequest{Message: ""})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, rr, "El mensaje del commit es requerido.")
}

func TestHandleSubmitMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/commits", "{mensaje roto")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, rr, "Cuerpo de la solicitud inválido.")
}

func TestHandleApprove(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().Approve(gomock.Any(), "abc1234", "secreto").Return("abc1234", nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits/approve",
		models.ApproveRequest{Hash: "abc1234", Secret: "secreto"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[models.ApproveResponse](t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "abc1234", resp.Hash)
}

func TestHandleApproveMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []models.ApproveRequest{
		{Hash: "abc1234"},
		{Secret: "secreto"},
		{},
	}
	for _, body := range cases {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits/approve", body)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorMessage(t, rr, "Hash y secret son requeridos.")
	}
}

func TestHandleApproveWrongSecret(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().Approve(gomock.Any(), "abc1234", "contraseña-mala").
		Return("", dErrors.New(dErrors.CodeForbidden, "Credenciales inválidas."))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits/approve",
		models.ApproveRequest{Hash: "abc1234", Secret: "contraseña-mala"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusForbidden)
	testutil.AssertErrorMessage(t, rr, "Credenciales inválidas.")
}

func TestHandleApproveNotFound(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().Approve(gomock.Any(), "zzzzzzz", "secreto").
		Return("", dErrors.New(dErrors.CodeNotFound, "Commit pendiente no encontrado."))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/commits/approve",
		models.ApproveRequest{Hash: "zzzzzzz", Secret: "secreto"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	testutil.AssertErrorMessage(t, rr, "Commit pendiente no encontrado.")
}

func TestHandleList(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().List(gomock.Any()).Return([]record.Record{
		{Hash: "bbbbbbb", Tap: record.TapStout, Alias: "luis", Message: "segundo", CreatedAt: "2026-01-02T00:00:00Z", Status: record.StatusPending},
		{Hash: "aaaaaaa", Tap: record.TapIPA, Alias: "ana", Message: "primero", CreatedAt: "2026-01-01T00:00:00Z", Status: record.StatusApproved},
	})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/commits", nil)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	views := testutil.UnmarshalResponse[[]models.RecordView](t, rr)
	require.Len(t, *views, 2)
	assert.Equal(t, "bbbbbbb", (*views)[0].Hash, "newest stays first")
	assert.Equal(t, "approved", (*views)[1].Status)
}

func TestHandleListNeverErrors(t *testing.T) {
	router, mockService := newTestRouter(t)

	mockService.EXPECT().List(gomock.Any()).Return([]record.Record{})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/commits", nil)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, "[]", rr.Body.String())
}
