package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/middleware"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeToppingService struct {
	createInput *services.ToppingInput
	createImage *services.ImageUpload
	created     *models.Topping
	createErr   error

	updateInput  *services.ToppingInput
	updated      *models.Topping
	updateErr    error
	deleteCalled bool

	raw     *models.Topping
	rawErr  error
	topping *models.Topping
	getErr  error

	listTenant string
	list       []models.Topping
	listErr    error
}

func (f *fakeToppingService) CreateTopping(ctx context.Context, input services.ToppingInput, image *services.ImageUpload) (*models.Topping, error) {
	f.createInput = &input
	f.createImage = image
	return f.created, f.createErr
}

func (f *fakeToppingService) UpdateTopping(ctx context.Context, existing *models.Topping, input services.ToppingInput, image *services.ImageUpload) (*models.Topping, error) {
	f.updateInput = &input
	return f.updated, f.updateErr
}

func (f *fakeToppingService) DeleteTopping(ctx context.Context, existing *models.Topping) error {
	f.deleteCalled = true
	return nil
}

func (f *fakeToppingService) GetTopping(ctx context.Context, id string) (*models.Topping, error) {
	return f.topping, f.getErr
}

func (f *fakeToppingService) GetToppingRaw(ctx context.Context, id string) (*models.Topping, error) {
	return f.raw, f.rawErr
}

func (f *fakeToppingService) ListToppings(ctx context.Context, tenantID string) ([]models.Topping, error) {
	f.listTenant = tenantID
	return f.list, f.listErr
}

func toppingRouter(svc ToppingServiceAPI, caller gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tc := NewToppingController(svc)

	r := gin.New()
	group := r.Group("/toppings")
	if caller != nil {
		group.Use(caller)
	}
	group.POST("", tc.CreateTopping)
	group.PUT("/:id", tc.UpdateTopping)
	group.GET("", tc.GetToppings)
	group.GET("/:id", tc.GetTopping)
	group.DELETE("/:id", tc.DeleteTopping)
	return r
}

func toppingFormFields() map[string]string {
	return map[string]string{
		"name":     "Olives",
		"price":    "25",
		"tenantId": "7",
	}
}

func TestCreateToppingHandler(t *testing.T) {
	t.Run("parses the multipart payload", func(t *testing.T) {
		svc := &fakeToppingService{created: &models.Topping{ID: primitive.NewObjectID()}}
		r := toppingRouter(svc, asCaller(middleware.RoleAdmin, ""))

		body, contentType := multipartBody(t, toppingFormFields(), 64)
		req := httptest.NewRequest(http.MethodPost, "/toppings", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.createInput)
		assert.Equal(t, "Olives", svc.createInput.Name)
		assert.Equal(t, "25", svc.createInput.Price)
		assert.Nil(t, svc.createInput.IsPublish)
		require.NotNil(t, svc.createImage)
		assert.Len(t, svc.createImage.Data, 64)
	})

	t.Run("missing price is a 400", func(t *testing.T) {
		svc := &fakeToppingService{}
		r := toppingRouter(svc, asCaller(middleware.RoleAdmin, ""))

		fields := toppingFormFields()
		delete(fields, "price")
		body, contentType := multipartBody(t, fields, 64)
		req := httptest.NewRequest(http.MethodPost, "/toppings", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.createInput)
	})

	t.Run("missing image is a 400", func(t *testing.T) {
		svc := &fakeToppingService{}
		r := toppingRouter(svc, asCaller(middleware.RoleAdmin, ""))

		body, contentType := multipartBody(t, toppingFormFields(), 0)
		req := httptest.NewRequest(http.MethodPost, "/toppings", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateToppingHandler(t *testing.T) {
	existing := &models.Topping{ID: primitive.NewObjectID(), TenantID: "7", Image: "key"}

	t.Run("foreign tenant gets 403 with no mutation", func(t *testing.T) {
		svc := &fakeToppingService{raw: existing}
		r := toppingRouter(svc, asCaller(middleware.RoleManager, "9"))

		body, contentType := multipartBody(t, toppingFormFields(), 0)
		req := httptest.NewRequest(http.MethodPut, "/toppings/"+existing.ID.Hex(), body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, svc.updateInput)
	})

	t.Run("owning tenant may update without a new image", func(t *testing.T) {
		svc := &fakeToppingService{raw: existing, updated: existing}
		r := toppingRouter(svc, asCaller(middleware.RoleManager, "7"))

		body, contentType := multipartBody(t, toppingFormFields(), 0)
		req := httptest.NewRequest(http.MethodPut, "/toppings/"+existing.ID.Hex(), body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.updateInput)
	})
}

func TestDeleteToppingHandler(t *testing.T) {
	existing := &models.Topping{ID: primitive.NewObjectID(), TenantID: "7"}

	t.Run("admin may delete any tenant's topping", func(t *testing.T) {
		svc := &fakeToppingService{raw: existing}
		r := toppingRouter(svc, asCaller(middleware.RoleAdmin, "9"))

		req := httptest.NewRequest(http.MethodDelete, "/toppings/"+existing.ID.Hex(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.deleteCalled)
	})

	t.Run("foreign tenant gets 403", func(t *testing.T) {
		svc := &fakeToppingService{raw: existing}
		r := toppingRouter(svc, asCaller(middleware.RoleManager, "9"))

		req := httptest.NewRequest(http.MethodDelete, "/toppings/"+existing.ID.Hex(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, svc.deleteCalled)
	})
}

func TestGetToppingsHandler(t *testing.T) {
	svc := &fakeToppingService{list: []models.Topping{{Name: "Olives"}}}
	r := toppingRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/toppings?tenantId=7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", svc.listTenant)

	var resp struct {
		Data []models.Topping `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}
