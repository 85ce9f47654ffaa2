package handler

import (
	"errors"
	"net/http"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type SignupHandler struct {
	signupService service.SignupService
}

func NewSignupHandler(signupService service.SignupService) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
	}
}

func (h *SignupHandler) EmailSignup(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.EmailSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.signupService.Signup(ctx, req.Email); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please enter a valid email."})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Thanks for signing up."})
}
