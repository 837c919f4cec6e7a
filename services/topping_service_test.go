package services

import (
	"context"
	"errors"
	"testing"

	"catalog-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeToppingRepo struct {
	created   *models.Topping
	createID  primitive.ObjectID
	createErr error

	updates       bson.M
	updateMatched int64
	updateErr     error

	deleteCount int64

	found   *models.Topping
	findErr error

	filter  bson.M
	results []models.Topping
	findAll error
}

func (f *fakeToppingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Topping, error) {
	return f.found, f.findErr
}

func (f *fakeToppingRepo) Find(ctx context.Context, filter bson.M) ([]models.Topping, error) {
	f.filter = filter
	return f.results, f.findAll
}

func (f *fakeToppingRepo) Create(ctx context.Context, t *models.Topping) (primitive.ObjectID, error) {
	f.created = t
	return f.createID, f.createErr
}

func (f *fakeToppingRepo) Update(ctx context.Context, id primitive.ObjectID, u bson.M) (int64, error) {
	f.updates = u
	return f.updateMatched, f.updateErr
}

func (f *fakeToppingRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return f.deleteCount, nil
}

type toppingFixture struct {
	svc     *ToppingService
	repo    *fakeToppingRepo
	storage *fakeStorage
	broker  *fakeBroker
}

func newToppingFixture() *toppingFixture {
	repo := &fakeToppingRepo{createID: primitive.NewObjectID(), updateMatched: 1, deleteCount: 1}
	st := &fakeStorage{}
	broker := &fakeBroker{}
	return &toppingFixture{
		svc:     NewToppingService(repo, st, broker),
		repo:    repo,
		storage: st,
		broker:  broker,
	}
}

func testToppingInput() ToppingInput {
	return ToppingInput{Name: "Olives", Price: "25", TenantID: "7"}
}

func TestCreateTopping(t *testing.T) {
	t.Run("success publishes snapshot and defaults to published", func(t *testing.T) {
		fx := newToppingFixture()

		topping, err := fx.svc.CreateTopping(context.Background(), testToppingInput(), testImage())
		require.NoError(t, err)

		assert.True(t, topping.IsPublish)
		require.Len(t, fx.storage.uploaded, 1)
		assert.Equal(t, fx.storage.uploaded[0], topping.Image)

		require.Len(t, fx.broker.events, 1)
		assert.Equal(t, TopicTopping, fx.broker.events[0].topic)
		assert.Equal(t, EventToppingCreate, fx.broker.events[0].event.EventType)
		payload, ok := fx.broker.events[0].event.Data.(toppingEvent)
		require.True(t, ok)
		assert.Equal(t, "25", payload.Price)
		assert.Equal(t, "7", payload.TenantID)
	})

	t.Run("explicit isPublish false is honored", func(t *testing.T) {
		fx := newToppingFixture()
		input := testToppingInput()
		unpublished := false
		input.IsPublish = &unpublished

		topping, err := fx.svc.CreateTopping(context.Background(), input, testImage())
		require.NoError(t, err)
		assert.False(t, topping.IsPublish)
	})

	t.Run("non-numeric price rejected before side effects", func(t *testing.T) {
		fx := newToppingFixture()
		input := testToppingInput()
		input.Price = "twenty"

		_, err := fx.svc.CreateTopping(context.Background(), input, testImage())
		assertCode(t, err, 400)
		assert.Empty(t, fx.storage.uploaded)
		assert.Nil(t, fx.repo.created)
	})

	t.Run("missing image rejected", func(t *testing.T) {
		fx := newToppingFixture()

		_, err := fx.svc.CreateTopping(context.Background(), testToppingInput(), nil)
		assertCode(t, err, 400)
		assert.Empty(t, fx.storage.uploaded)
	})

	t.Run("persistence failure releases the uploaded image", func(t *testing.T) {
		fx := newToppingFixture()
		fx.repo.createErr = errors.New("write conflict")

		_, err := fx.svc.CreateTopping(context.Background(), testToppingInput(), testImage())
		assertCode(t, err, 500)
		assert.Equal(t, fx.storage.uploaded, fx.storage.deleted)
		assert.Empty(t, fx.broker.events)
	})
}

func TestUpdateTopping(t *testing.T) {
	existing := &models.Topping{
		ID:        primitive.NewObjectID(),
		Name:      "Olives",
		Image:     "old-key",
		IsPublish: true,
	}

	t.Run("keeps publish state when not supplied", func(t *testing.T) {
		fx := newToppingFixture()

		updated, err := fx.svc.UpdateTopping(context.Background(), existing, testToppingInput(), nil)
		require.NoError(t, err)

		assert.True(t, updated.IsPublish)
		assert.Equal(t, "old-key", updated.Image)
		require.Len(t, fx.broker.events, 1)
		assert.Equal(t, EventToppingUpdate, fx.broker.events[0].event.EventType)
	})

	t.Run("new image replaces the old one", func(t *testing.T) {
		fx := newToppingFixture()

		updated, err := fx.svc.UpdateTopping(context.Background(), existing, testToppingInput(), testImage())
		require.NoError(t, err)

		require.Len(t, fx.storage.uploaded, 1)
		assert.Equal(t, fx.storage.uploaded[0], updated.Image)
		assert.Equal(t, []string{"old-key"}, fx.storage.deleted)
	})

	t.Run("vanished topping reports not found", func(t *testing.T) {
		fx := newToppingFixture()
		fx.repo.updateMatched = 0

		_, err := fx.svc.UpdateTopping(context.Background(), existing, testToppingInput(), nil)
		assertCode(t, err, 404)
	})
}

func TestListToppings(t *testing.T) {
	t.Run("filters by tenant and resolves image URLs", func(t *testing.T) {
		fx := newToppingFixture()
		fx.repo.results = []models.Topping{{Name: "Olives", Image: "k1"}}

		toppings, err := fx.svc.ListToppings(context.Background(), "7")
		require.NoError(t, err)

		assert.Equal(t, bson.M{"tenantId": "7"}, fx.repo.filter)
		assert.Equal(t, "https://cdn.test/k1", toppings[0].Image)
	})

	t.Run("empty tenant lists everything", func(t *testing.T) {
		fx := newToppingFixture()

		_, err := fx.svc.ListToppings(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, fx.repo.filter)
	})
}
