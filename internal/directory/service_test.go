package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
)

type memRepo struct {
	departments   []Department
	organizations []Organization
}

func (m *memRepo) ListDepartments(context.Context) ([]Department, error) { return m.departments, nil }

func (m *memRepo) CreateDepartment(_ context.Context, d *Department) error {
	for _, existing := range m.departments {
		if existing.Name == d.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	d.ID = uint(len(m.departments) + 1)
	m.departments = append(m.departments, *d)
	return nil
}

func (m *memRepo) DepartmentExists(_ context.Context, id uint) (bool, error) {
	return int(id) <= len(m.departments) && id > 0, nil
}

func (m *memRepo) ListOrganizations(context.Context) ([]Organization, error) {
	return m.organizations, nil
}

func (m *memRepo) CreateOrganization(_ context.Context, o *Organization) error {
	for _, existing := range m.organizations {
		if existing.Name == o.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	o.ID = uint(len(m.organizations) + 1)
	m.organizations = append(m.organizations, *o)
	return nil
}

func (m *memRepo) OrganizationExists(_ context.Context, id uint) (bool, error) {
	return int(id) <= len(m.organizations) && id > 0, nil
}

func TestCreateDepartment_DuplicateIsConflict(t *testing.T) {
	svc := NewService(&memRepo{}, nil)
	ctx := context.Background()

	d, err := svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: " Computer Science "})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", d.Name)

	_, err = svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "Computer Science"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestListDepartments_EmptyIsNotNil(t *testing.T) {
	out, err := NewService(&memRepo{}, nil).ListDepartments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestOrganizationHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(&memRepo{}, nil))
	r := gin.New()
	r.GET("/organizations", h.ListOrganizations)
	r.POST("/organizations", h.CreateOrganization)

	post := func(body string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/organizations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post(`{"organization_name":"Infosys","website":"https://infosys.com"}`))
	assert.Equal(t, http.StatusConflict, post(`{"organization_name":"Infosys"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"website":"https://x.org"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"organization_name":"TCS","website":"not a url"}`))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/organizations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"organization_name":"Infosys"`)
}
