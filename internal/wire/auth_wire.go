package wire

import (
	"kickstreet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, h *adaptor.AuthHandler, g guards) {
	r.Route("/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", h.Register)
		r.Post("/verify-otp", h.VerifyOTP)
		r.Post("/resend-otp", h.ResendOTP)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)

		// ==================== PROTECTED ROUTES ====================
		r.With(g.auth).Post("/logout", h.Logout)
		r.With(g.auth).Get("/role", h.Role)
	})
}
