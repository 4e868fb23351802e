package handlers

import (
	"bytes"
	"encoding/json"

	"storefront/internal/apperr"
	"storefront/pkg/logx"

	"github.com/gofiber/fiber/v2"
)

// StrictJSONDecoder decodes request bodies and rejects fields the target
// struct does not declare. It is meant for fiber.Config.JSONDecoder.
func StrictJSONDecoder(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseOptionalBody decodes the body into out unless it is empty, in which
// case out keeps its zero value.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// parseID reads a positive numeric :id path parameter.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError writes err's client message under key, with the status of
// its kind. Internal causes are logged and never sent.
func respondError(c *fiber.Ctx, err error, key string) error {
	appErr := apperr.From(err)
	status := appErr.Status()

	event := logx.Debug()
	if appErr.Kind == apperr.KindInternal {
		event = logx.Error()
	}
	event.Err(appErr.Err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Str("kind", appErr.Kind.String()).
		Msg(appErr.Message)

	return c.Status(status).JSON(fiber.Map{key: appErr.Message})
}
