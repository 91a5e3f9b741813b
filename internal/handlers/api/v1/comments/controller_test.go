package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidtube/internal/contextutils"
	"vidtube/internal/models"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) Create(ctx context.Context, actorID int64, req services.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actorID, req)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentService) Update(ctx context.Context, actorID, commentID int64, req services.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actorID, commentID, req)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentService) Delete(ctx context.Context, actorID, commentID int64) error {
	return m.Called(ctx, actorID, commentID).Error(0)
}

func (m *mockCommentService) ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	args := m.Called(ctx, videoID, viewerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Comment])
	return page, args.Error(1)
}

func (m *mockCommentService) ListByUser(ctx context.Context, targetUserID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	args := m.Called(ctx, targetUserID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Comment])
	return page, args.Error(1)
}

func (m *mockCommentService) CountByVideo(ctx context.Context, videoID int64, viewerID *int64) (int64, error) {
	args := m.Called(ctx, videoID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestRouter(svc services.CommentService) *mux.Router {
	builder := response.NewBuilder(nil, zap.NewNop())
	controller := NewController(svc, builder, response.NewPaginationParser(nil), zap.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/comments", controller.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/comments/{commentId}", controller.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/v1/comments/{commentId}", controller.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/videos/{videoId}/comments", controller.ListByVideo).Methods(http.MethodGet)
	return r
}

func authed(r *http.Request, userID int64) *http.Request {
	return r.WithContext(contextutils.WithUserID(r.Context(), userID))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestCreateComment(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	req := services.CreateCommentRequest{VideoID: 1, Content: "nice video"}
	svc.On("Create", mock.Anything, int64(3), req).
		Return(&models.Comment{ID: 7, VideoID: 1, OwnerID: 3, Content: "nice video"}, nil)

	body := strings.NewReader(`{"videoId":1,"content":"nice video"}`)
	r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/comments", body), 3)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)
	svc.AssertExpectations(t)
}

func TestCreateCommentEmptyBody(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/comments", nil), 3)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Type)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCommentForbidden(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	svc.On("Update", mock.Anything, int64(4), int64(7), services.UpdateCommentRequest{Content: "edited"}).
		Return(nil, services.NewForbiddenError("you do not own this comment"))

	body := strings.NewReader(`{"content":"edited"}`)
	r := authed(httptest.NewRequest(http.MethodPatch, "/api/v1/comments/7", body), 4)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	svc.On("Delete", mock.Anything, int64(3), int64(99)).
		Return(services.EntityNotFoundError("comment"))

	r := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/comments/99", nil), 3)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentInvalidID(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	r := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/comments/abc", nil), 3)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByVideoPassesPagination(t *testing.T) {
	svc := new(mockCommentService)
	router := newTestRouter(svc)

	params := models.PaginationParams{Page: 2, Limit: 5, SortType: "desc"}
	page := models.NewPaginatedResponse([]*models.Comment{{ID: 1, VideoID: 9}}, params, 6)
	svc.On("ListByVideo", mock.Anything, int64(9), (*int64)(nil), params).Return(page, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/videos/9/comments?page=2&limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	svc.AssertExpectations(t)
}
