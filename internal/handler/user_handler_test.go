package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, q *model.UserQuery) ([]model.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, name string, age int, email string) (*model.User, error) {
	args := m.Called(ctx, name, age, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, name string, age int, email string) (*model.User, error) {
	args := m.Called(ctx, id, name, age, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) AddRole(ctx context.Context, id uint, name model.RoleName) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func statusOf(err error) int {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return 0
	}
	return he.Code
}

func TestUserHandler_GetUser_BadID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "zero id", id: "0"},
		{name: "negative id", id: "-2"},
		{name: "non-numeric id", id: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			h := NewUserHandler(mockSvc)

			c, _ := newTestContext(http.MethodGet, "/api/users/"+tt.id, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := h.GetUser(c)
			assert.Equal(t, http.StatusBadRequest, statusOf(err))
			mockSvc.AssertNotCalled(t, "GetUser")
		})
	}
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("known id returns the user", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("GetUser", mock.Anything, uint(1)).
			Return(&model.User{ID: 1, Name: "Egor", Age: 20, Email: "egor.ivanovBYM@gmail.com"}, nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/api/users/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.GetUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Egor"`)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("GetUser", mock.Anything, uint(42)).Return(nil, apperrors.ErrUserNotFound)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodGet, "/api/users/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")

		assert.Equal(t, http.StatusNotFound, statusOf(h.GetUser(c)))
	})
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("valid payload creates and returns the user", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("CreateUser", mock.Anything, "Egor", 20, "egor@gmail.com").
			Return(&model.User{ID: 6, Name: "Egor", Age: 20, Email: "egor@gmail.com"}, nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodPost, "/api/users", `{"name":"Egor","age":20,"email":"egor@gmail.com"}`)

		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":6`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-gmail email is rejected before the service", func(t *testing.T) {
		mockSvc := new(MockUserService)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users", `{"name":"Egor","age":20,"email":"egor@yahoo.com"}`)

		assert.Equal(t, http.StatusBadRequest, statusOf(h.CreateUser(c)))
		mockSvc.AssertNotCalled(t, "CreateUser")
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		mockSvc := new(MockUserService)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users", `{"name":"Egor"}`)

		assert.Equal(t, http.StatusBadRequest, statusOf(h.CreateUser(c)))
		mockSvc.AssertNotCalled(t, "CreateUser")
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("CreateUser", mock.Anything, "Egor", 20, "taken@gmail.com").
			Return(nil, apperrors.ErrEmailTaken)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users", `{"name":"Egor","age":20,"email":"taken@gmail.com"}`)

		assert.Equal(t, http.StatusConflict, statusOf(h.CreateUser(c)))
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("partial payload reaches the service as-is", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("UpdateUser", mock.Anything, uint(1), "Georgiy", 0, "").
			Return(&model.User{ID: 1, Name: "Georgiy", Age: 20, Email: "egor.ivanovBYM@gmail.com"}, nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodPut, "/api/users/1", `{"name":"Georgiy"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.UpdateUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad email is rejected", func(t *testing.T) {
		mockSvc := new(MockUserService)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPut, "/api/users/1", `{"email":"egor@outlook.com"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.Equal(t, http.StatusBadRequest, statusOf(h.UpdateUser(c)))
		mockSvc.AssertNotCalled(t, "UpdateUser")
	})
}

func TestUserHandler_AddRole(t *testing.T) {
	t.Run("role by name", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("AddRole", mock.Anything, uint(1), model.RoleAdmin).Return(nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodPost, "/api/users/1/Admin", "")
		c.SetParamNames("id", "roleName")
		c.SetParamValues("1", "Admin")

		assert.NoError(t, h.AddRole(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("role by numeric code", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("AddRole", mock.Anything, uint(1), model.RoleSuperAdmin).Return(nil)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users/1/3", "")
		c.SetParamNames("id", "roleName")
		c.SetParamValues("1", "3")

		assert.NoError(t, h.AddRole(c))
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown role name is 400", func(t *testing.T) {
		mockSvc := new(MockUserService)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users/1/Moderator", "")
		c.SetParamNames("id", "roleName")
		c.SetParamValues("1", "Moderator")

		assert.Equal(t, http.StatusBadRequest, statusOf(h.AddRole(c)))
		mockSvc.AssertNotCalled(t, "AddRole")
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("AddRole", mock.Anything, uint(42), model.RoleUser).Return(apperrors.ErrUserNotFound)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodPost, "/api/users/42/User", "")
		c.SetParamNames("id", "roleName")
		c.SetParamValues("42", "User")

		assert.Equal(t, http.StatusNotFound, statusOf(h.AddRole(c)))
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("unknown id is 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("DeleteUser", mock.Anything, uint(42)).Return(apperrors.ErrUserNotFound)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodDelete, "/api/users/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")

		assert.Equal(t, http.StatusNotFound, statusOf(h.DeleteUser(c)))
	})

	t.Run("existing id deletes", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("DeleteUser", mock.Anything, uint(1)).Return(nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodDelete, "/api/users/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")

		assert.NoError(t, h.DeleteUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("query parameters are bound", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, mock.MatchedBy(func(q *model.UserQuery) bool {
			return q.PageNumber == 1 && q.PageSize == 2 && q.SortField == model.SortByAge && q.Ascending()
		})).Return([]model.User{
			{ID: 3, Name: "Daniil", Age: 16},
			{ID: 2, Name: "Artem", Age: 19},
		}, nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/api/users?pageNumber=1&pageSize=2&sortField=1&isAsc=true", "")

		assert.NoError(t, h.ListUsers(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Daniil"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("sort field binds by name", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, mock.MatchedBy(func(q *model.UserQuery) bool {
			return q.PageNumber == 1 && q.PageSize == 2 && q.SortField == model.SortByAge && q.Ascending()
		})).Return([]model.User{
			{ID: 3, Name: "Daniil", Age: 16},
			{ID: 2, Name: "Artem", Age: 19},
		}, nil)
		h := NewUserHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/api/users?pageNumber=1&pageSize=2&sortField=Age&isAsc=true", "")

		assert.NoError(t, h.ListUsers(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown sort field is 400", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidSortField)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodGet, "/api/users?sortField=9", "")

		assert.Equal(t, http.StatusBadRequest, statusOf(h.ListUsers(c)))
	})

	t.Run("unavailable store is 404", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("ListUsers", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUsersUnavailable)
		h := NewUserHandler(mockSvc)

		c, _ := newTestContext(http.MethodGet, "/api/users", "")

		assert.Equal(t, http.StatusNotFound, statusOf(h.ListUsers(c)))
	})
}
