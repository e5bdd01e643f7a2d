package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/insuvit/storefront/internal/models"
	"github.com/insuvit/storefront/internal/utils"
	"github.com/insuvit/storefront/internal/utils/response"
)

type NewsletterHandler struct {
	validator *validator.Validate
}

func NewNewsletterHandler() *NewsletterHandler {
	return &NewsletterHandler{validator: validator.New()}
}

// Subscribe validates the address and acknowledges. There is no backing
// mailing list; the acknowledgment is the whole feature.
func (h *NewsletterHandler) Subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.NewsletterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		response.SuccessWithNotice(w, http.StatusOK, nil,
			"Thank you for subscribing to our newsletter", response.SeveritySuccess)
	}
}
