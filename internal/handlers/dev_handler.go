package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints.
// Routes are registered only outside production.
type DevHandler struct {
	profileService services.ProfileServiceInterface
	tokenService   services.TokenServiceInterface
}

func NewDevHandler(profileService services.ProfileServiceInterface, tokenService services.TokenServiceInterface) *DevHandler {
	return &DevHandler{
		profileService: profileService,
		tokenService:   tokenService,
	}
}

// IssueToken mints an access token for an existing profile
//
// Method: POST /dev/token
// Body: {"profile_id": "<uuid>"}
//
// Error Responses:
//   - 400: Invalid body
//   - 404: Profile not found
//   - 500: Signing key not configured
func (h *DevHandler) IssueToken(c echo.Context) error {
	var req dto.DevTokenRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("profile_id must be a valid UUID"))
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), uuid.MustParse(req.ProfileID))
	if err != nil {
		return SendServiceError(c, err)
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(profile)
	if err != nil {
		if stderrors.Is(err, services.ErrSigningDisabled) {
			return SendError(c, errors.SystemConfigurationError)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
	})
}
