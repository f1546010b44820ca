package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kickstreet/internal/data/repository"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestApp() *App {
	log := zap.NewNop()
	config := &utils.Config{
		App:     utils.AppConfig{BaseURL: "http://shop.test", CORSOrigins: []string{"http://shop.test"}},
		Payment: utils.PaymentConfig{SecretKey: "sk_test_x", WebhookSecret: "whsec_test", Currency: "inr"},
	}
	deps := usecase.Deps{
		Mailer:  mailer.NewLogMailer(log, false),
		Payment: payment.NewStripeGateway(config.Payment, log),
		Tokens:  utils.NewTokenIssuer("test-secret", time.Hour),
	}
	return Wiring(&repository.Repository{}, nil, config, deps, log)
}

func TestRoutes_NoDatabaseNeeded(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		header map[string]string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/api/cart/quote", want: http.StatusMethodNotAllowed},
		{name: "my orders without token", method: http.MethodGet, path: "/api/orders/mine", want: http.StatusUnauthorized},
		{name: "profile without token", method: http.MethodGet, path: "/api/user/profile", want: http.StatusUnauthorized},
		{name: "admin stats without token", method: http.MethodGet, path: "/api/admin/stats", want: http.StatusUnauthorized},
		{
			name: "admin with forged token", method: http.MethodGet, path: "/api/admin/orders",
			header: map[string]string{"Authorization": "Bearer not-a-jwt"},
			want:   http.StatusUnauthorized,
		},
		{name: "register without body", method: http.MethodPost, path: "/api/auth/register", want: http.StatusBadRequest},
		{
			name: "register with invalid email", method: http.MethodPost, path: "/api/auth/register",
			body: `{"name":"Asha","email":"nope","phone":"9876543210","password":"secret123"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "webhook with bad signature", method: http.MethodPost, path: "/api/webhooks/payment",
			body:   `{"id":"evt_1","type":"checkout.session.completed"}`,
			header: map[string]string{"Stripe-Signature": "t=1,v1=deadbeef"},
			want:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			app.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
