package handlers

import "github.com/insuvit/storefront/internal/errors"

func buildIDRequiredError() *errors.AppError {
	return errors.BadRequestError("Product ID is required")
}
