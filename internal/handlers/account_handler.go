package handlers

import (
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" validate:"required"`
	ConfirmPassword string  `json:"Confirm_Password" validate:"eqfield=Password"`
}

// SigninRequest is the body of POST /signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler handles admin signup and signin.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/signin", h.HandleSignin)
}

// HandleSignup stores a new account. No session is started; the client
// signs in separately.
func (h *AccountHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid("Invalid request body"), "message")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, signupValidationError(err), "message")
	}

	account := &models.Account{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	if err := h.service.Signup(c.UserContext(), account); err != nil {
		return respondError(c, err, "message")
	}
	return c.JSON(fiber.Map{"message": "Signup successful! Go to SignIn page."})
}

// A confirmation mismatch is reported before missing fields.
func signupValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "eqfield" {
				return apperr.Invalid(services.MsgPasswordMismatch)
			}
		}
	}
	return apperr.Invalid(services.MsgSignupFieldsNeeded)
}

// HandleSignin echoes the matching stored account.
func (h *AccountHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(services.MsgInvalidCredentials), "message")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, apperr.Invalid(services.MsgInvalidCredentials), "message")
	}

	account, err := h.service.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "message")
	}
	return c.JSON(fiber.Map{
		"message": "Login Successful! Redirecting to Admin Page",
		"admin":   account,
	})
}
