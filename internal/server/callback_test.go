package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCallbackHandler(t *testing.T) {
	t.Run("CapturesCodeOnValidCallback", func(t *testing.T) {
		handler := NewCallbackHandler("state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?code=auth-code&state=state123", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Authorization Successful") {
			t.Error("expected success page")
		}

		result := <-handler.Result()
		if err := result.Error(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Code != "auth-code" {
			t.Errorf("expected captured code, got %q", result.Code)
		}
	})

	t.Run("RejectsStateMismatch", func(t *testing.T) {
		handler := NewCallbackHandler("expected")

		req := httptest.NewRequest(http.MethodGet, "/callback?code=auth-code&state=forged", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected state validation error")
		}
	})

	t.Run("RejectsMissingCode", func(t *testing.T) {
		handler := NewCallbackHandler("state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied&error_description=denied", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}

		result := <-handler.Result()
		err := result.Error()
		if err == nil {
			t.Fatal("expected authorization error")
		}
		if !strings.Contains(err.Error(), "access_denied") {
			t.Errorf("expected error param in message, got %v", err)
		}
	})

	t.Run("ProcessesOnlyFirstCallback", func(t *testing.T) {
		handler := NewCallbackHandler("state123")

		first := httptest.NewRequest(http.MethodGet, "/callback?code=one&state=state123", nil)
		handler.ServeHTTP(httptest.NewRecorder(), first)

		replay := httptest.NewRequest(http.MethodGet, "/callback?code=two&state=state123", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, replay)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected replay rejection, got %d", w.Code)
		}

		result := <-handler.Result()
		if result.Code != "one" {
			t.Errorf("expected first code to win, got %q", result.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("FiltersByMethod", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodPost, "/submit", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/submit", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", w.Code)
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		if w.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", w.Code)
		}
	})

	t.Run("AppliesMiddlewareInOrder", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("outer"), mw("inner"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
			t.Errorf("unexpected middleware order: %v", order)
		}
	})
}
