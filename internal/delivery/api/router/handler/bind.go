package handler

import (
	"encoding/json"
	"io"

	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"

	"github.com/labstack/echo/v4"
)

const invalidBodyMessage = "Invalid request."

// bindStrict decodes the JSON body into dst and rejects unknown fields.
// An empty body decodes as an empty object so that the validator reports
// the missing fields. Failures are answered with httpCode.
func bindStrict(c echo.Context, dst any, httpCode int) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domainerrors.NewValidationError(httpCode, invalidBodyMessage, map[string]string{
			"body": err.Error(),
		})
	}

	if decoder.More() {
		return domainerrors.NewValidationError(httpCode, invalidBodyMessage, map[string]string{
			"body": "unexpected data after JSON object",
		})
	}

	return nil
}
