package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/api/metrics"
	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Prenom  string `json:"prenom" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Send forwards a contact form submission to the site inbox.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /mail [post]
func (h *ContactHandler) Send(c echo.Context) error {
	var req contactRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.service.Send(c.Request().Context(), domain.ContactMessage{
		FirstName: req.Prenom,
		Email:     req.Email,
		Message:   req.Message,
	})
	metrics.MailsSentTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email sent successfully"})
}
