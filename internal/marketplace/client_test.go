package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetOrderDetail(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"error":"","message":"","response":{"order_list":[{"order_sn":"X1","order_status":"READY_TO_SHIP","buyer_username":"buyer1"}]}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "partner-1", 5*time.Second)
	detail, err := client.GetOrderDetail(context.Background(), 42, "X1")
	if err != nil {
		t.Fatalf("GetOrderDetail returned error: %v", err)
	}
	if gotPath != "/order/detail" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody["order_sn"] != "X1" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if detail.OrderSN != "X1" || detail.OrderStatus != "READY_TO_SHIP" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestGetOrderDetailEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"","response":{"order_list":[]}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	if _, err := client.GetOrderDetail(context.Background(), 42, "GHOST"); err == nil {
		t.Fatal("expected error for missing order")
	}
}

func TestEnvelopeErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"error_auth","message":"invalid partner"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	err := client.ShipOrder(context.Background(), 42, "X1")
	if err == nil {
		t.Fatal("expected error from envelope")
	}
}

func TestNon2xxStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	err := client.CreateShippingDocument(context.Background(), 42, []DocumentRequest{{OrderSN: "X1"}})
	if err == nil {
		t.Fatal("expected error for upstream 502")
	}
}

func TestPartnerHeaderSent(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Partner-Id")
		_, _ = w.Write([]byte(`{"error":""}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "partner-9", 5*time.Second)
	if err := client.ShipOrder(context.Background(), 1, "X1"); err != nil {
		t.Fatalf("ShipOrder returned error: %v", err)
	}
	if gotHeader != "partner-9" {
		t.Fatalf("X-Partner-Id = %q, want partner-9", gotHeader)
	}
}
