package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/apperror"
	"library-api/internal/shared/response"
	"library-api/internal/shared/validation"
)

const payloadKey = "payload"

// Bodies keep numbers as json.Number so integers beyond 2^53 stay exact
func init() {
	binding.EnableDecoderUseNumber = true
}

// InvalidBodyMessage is returned when the body is not a JSON object
const InvalidBodyMessage = "Le corps de la requête doit être un objet JSON valide"

// ValidateBody decodes the JSON object body, checks it against schema and
// stores the normalized payload for the handler. An empty body is
// validated as {}.
func ValidateBody(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := map[string]interface{}{}
		if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
			response.AbortWithError(c, apperror.BadRequest(InvalidBodyMessage))
			return
		}

		payload, err := schema.Validate(raw)
		if err != nil {
			log.Debug().
				Str("request_id", c.GetString("request_id")).
				Str("schema", schema.Name()).
				Err(err).
				Msg("request body rejected")
			response.AbortWithError(c, err)
			return
		}

		c.Set(payloadKey, payload)
		c.Next()
	}
}

// ValidatedPayload returns the payload stored by ValidateBody
func ValidatedPayload(c *gin.Context) validation.Payload {
	if v, ok := c.Get(payloadKey); ok {
		if p, ok := v.(validation.Payload); ok {
			return p
		}
	}
	return validation.Payload{}
}
