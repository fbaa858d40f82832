package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/models"
)

type fakeNotificationStore struct {
	records  []models.ShopNotification
	readIDs  []int64
	listErr  error
	lastShop int64
}

func (f *fakeNotificationStore) ListNotifications(_ context.Context, shopID int64, unreadOnly bool) ([]models.ShopNotification, error) {
	f.lastShop = shopID
	if f.listErr != nil {
		return nil, f.listErr
	}
	if !unreadOnly {
		return f.records, nil
	}
	var unread []models.ShopNotification
	for _, r := range f.records {
		if !r.Read {
			unread = append(unread, r)
		}
	}
	return unread, nil
}

func (f *fakeNotificationStore) MarkNotificationsRead(_ context.Context, ids []int64) (int64, error) {
	f.readIDs = ids
	return int64(len(ids)), nil
}

func newNotificationsApp(store *fakeNotificationStore) *fiber.App {
	app := fiber.New()
	handler := NewNotificationsHandler(store, zap.NewNop())
	app.Get("/notifications", handler.List)
	app.Post("/notifications/read", handler.MarkRead)
	return app
}

func penaltyRecord(id int64, read bool) models.ShopNotification {
	return models.ShopNotification{
		ID:               id,
		NotificationType: models.NotificationShopPenalty,
		ShopID:           42,
		Data:             models.JSONBlob(`{"code":16,"shop_id":42,"timestamp":1700000000,"data":{"action_type":1,"points_issued_data":{"issued_points":3,"violation_type":9}}}`),
		Read:             read,
	}
}

func TestListRehydratesStoredRecords(t *testing.T) {
	store := &fakeNotificationStore{records: []models.ShopNotification{penaltyRecord(7, true)}}
	app := newNotificationsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications?shop_id=42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(42), store.lastShop)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Notifications []struct {
			ID     int64  `json:"id"`
			Type   string `json:"type"`
			Action string `json:"action"`
			Read   bool   `json:"read"`
		} `json:"notifications"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, 1, body.Count)

	n := body.Notifications[0]
	assert.Equal(t, int64(7), n.ID)
	assert.Equal(t, "shop_penalty", n.Type)
	assert.Equal(t, "POINT_ISSUED", n.Action)
	assert.True(t, n.Read)
}

func TestListSkipsCorruptRecords(t *testing.T) {
	store := &fakeNotificationStore{records: []models.ShopNotification{
		penaltyRecord(1, false),
		{
			ID:               2,
			NotificationType: models.NotificationShopPenalty,
			Data:             models.JSONBlob(`{{not json`),
		},
	}}
	app := newNotificationsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 1, body.Count)
}

func TestListRejectsBadShopID(t *testing.T) {
	app := newNotificationsApp(&fakeNotificationStore{})
	resp, err := app.Test(httptest.NewRequest("GET", "/notifications?shop_id=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkRead(t *testing.T) {
	store := &fakeNotificationStore{}
	app := newNotificationsApp(store)

	req := httptest.NewRequest("POST", "/notifications/read", strings.NewReader(`{"ids":[1,2,3]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []int64{1, 2, 3}, store.readIDs)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(3), body.Updated)
}

func TestMarkReadRequiresIDs(t *testing.T) {
	app := newNotificationsApp(&fakeNotificationStore{})

	req := httptest.NewRequest("POST", "/notifications/read", strings.NewReader(`{"ids":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
