package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/service"
)

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) Register(ctx context.Context, userID uint, code string, info domain.StudentInfo) (domain.StudentInfo, error) {
	args := m.Called(ctx, userID, code, info)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockStudentService) Withdraw(ctx context.Context, userID, competitionID uint) error {
	args := m.Called(ctx, userID, competitionID)
	return args.Error(0)
}

func (m *MockStudentService) GetStudentInfo(ctx context.Context, userID, competitionID uint) (domain.StudentInfo, error) {
	args := m.Called(ctx, userID, competitionID)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockStudentService) UpdateStudentInfo(ctx context.Context, userID, competitionID uint, patch domain.StudentInfo) (domain.StudentInfo, error) {
	args := m.Called(ctx, userID, competitionID, patch)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockStudentService) GetTeamDetails(ctx context.Context, userID, competitionID uint) (domain.TeamDetails, error) {
	args := m.Called(ctx, userID, competitionID)
	return args.Get(0).(domain.TeamDetails), args.Error(1)
}

func (m *MockStudentService) RequestTeamNameChange(ctx context.Context, userID, competitionID uint, name string) (domain.Team, error) {
	args := m.Called(ctx, userID, competitionID, name)
	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockStudentService) RequestSiteChange(ctx context.Context, userID, competitionID, siteID uint) (domain.Team, error) {
	args := m.Called(ctx, userID, competitionID, siteID)
	return args.Get(0).(domain.Team), args.Error(1)
}

func studentRouter(userID uint, svc StudentService) http.Handler {
	h := NewStudentHandler(svc)
	r := newRouter(userID)
	r.POST("/competitions/student/join", h.HandleJoin)
	r.DELETE("/competitions/:competitionID/students/me", h.HandleWithdraw)
	r.GET("/competitions/:competitionID/students/me/team", h.HandleGetTeam)
	r.POST("/competitions/:competitionID/students/me/team/name", h.HandleRequestNameChange)
	r.POST("/competitions/:competitionID/students/me/team/site", h.HandleRequestSiteChange)
	return r
}

func TestStudentHandleJoin(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]interface{}
		svcErr     error
		wantCalled bool
		wantStatus int
	}{
		{
			name:       "registered",
			body:       map[string]interface{}{"code": "abcd1234", "level": "Level B", "degree_year": 2},
			wantCalled: true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short code",
			body:       map[string]interface{}{"code": "abc"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown level",
			body:       map[string]interface{}{"code": "abcd1234", "level": "Level Z"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "degree year out of range",
			body:       map[string]interface{}{"code": "abcd1234", "degree_year": 12},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "registration closed",
			body:       map[string]interface{}{"code": "abcd1234"},
			svcErr:     kindErr(service.KindAuth, "student registration is closed"),
			wantCalled: true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "already registered",
			body:       map[string]interface{}{"code": "abcd1234"},
			svcErr:     kindErr(service.KindConflict, "already registered"),
			wantCalled: true,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStudentService)
			if tt.wantCalled {
				svc.On("Register", mock.Anything, uint(3), "ABCD1234", mock.AnythingOfType("domain.StudentInfo")).
					Return(domain.StudentInfo{UserID: 3}, tt.svcErr).Once()
			}

			rec := doJSON(studentRouter(3, svc), http.MethodPost, "/competitions/student/join", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCalled {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestStudentHandleWithdraw(t *testing.T) {
	svc := new(MockStudentService)
	svc.On("Withdraw", mock.Anything, uint(3), uint(5)).Return(nil).Once()
	svc.On("Withdraw", mock.Anything, uint(3), uint(6)).Return(kindErr(service.KindNotFound, "not registered")).Once()

	rec := doJSON(studentRouter(3, svc), http.MethodDelete, "/competitions/5/students/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")

	rec = doJSON(studentRouter(3, svc), http.MethodDelete, "/competitions/6/students/me", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestStudentHandleGetTeam(t *testing.T) {
	svc := new(MockStudentService)
	svc.On("GetTeamDetails", mock.Anything, uint(3), uint(5)).Return(domain.TeamDetails{
		Team:     domain.Team{ID: 8, Name: "Off By One"},
		SiteName: "North",
	}, nil).Once()

	rec := doJSON(studentRouter(3, svc), http.MethodGet, "/competitions/5/students/me/team", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Off By One")
	assert.Contains(t, rec.Body.String(), `"site_name":"North"`)
	svc.AssertExpectations(t)
}

func TestStudentHandleChangeRequests(t *testing.T) {
	t.Run("name change is accepted for review", func(t *testing.T) {
		svc := new(MockStudentService)
		svc.On("RequestTeamNameChange", mock.Anything, uint(3), uint(5), "Null Pointers").
			Return(domain.Team{ID: 8, PendingName: "Null Pointers"}, nil).Once()

		rec := doJSON(studentRouter(3, svc), http.MethodPost, "/competitions/5/students/me/team/name",
			map[string]interface{}{"name": "Null Pointers"})

		assert.Equal(t, http.StatusAccepted, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := new(MockStudentService)
		rec := doJSON(studentRouter(3, svc), http.MethodPost, "/competitions/5/students/me/team/name",
			map[string]interface{}{"name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("site change without a team", func(t *testing.T) {
		svc := new(MockStudentService)
		svc.On("RequestSiteChange", mock.Anything, uint(3), uint(5), uint(2)).
			Return(domain.Team{}, kindErr(service.KindNotFound, "no team")).Once()

		rec := doJSON(studentRouter(3, svc), http.MethodPost, "/competitions/5/students/me/team/site",
			map[string]interface{}{"site_id": 2})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}
