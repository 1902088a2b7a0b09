package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/idempotency"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	maxIdempotencyKeyLen  = 128
	maxIdempotentBodySize = 1 << 20
)

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a repeated Idempotency-Key.
// A key reused with a different body is rejected with 422. Requests without
// the header pass through. Server errors release the key so the client may
// retry.
func Idempotency(store idempotency.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.Abort()
			httperr.BadRequest(c, "invalid_idempotency_key", "Chave de idempotência inválida.")
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBodySize+1))
			if err != nil || len(body) > maxIdempotentBodySize {
				c.Abort()
				httperr.BadRequest(c, "invalid_request", "Requisição inválida.")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		sum := sha256.Sum256(body)
		fingerprint := hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		scoped := c.Request.Method + " " + c.FullPath() + " " + key

		if resp, err := store.Get(ctx, scoped); err != nil {
			c.Abort()
			httperr.Respond(c, err, nil)
			return
		} else if resp != nil {
			c.Abort()
			if resp.Fingerprint != fingerprint {
				httperr.Write(c, http.StatusUnprocessableEntity, "idempotency_key_reused",
					"Chave de idempotência já usada com outra requisição.")
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(resp.Status, resp.ContentType, resp.Body)
			return
		}

		reserved, err := store.Reserve(ctx, scoped, ttl)
		if err != nil {
			c.Abort()
			httperr.Respond(c, err, nil)
			return
		}
		if !reserved {
			c.Abort()
			httperr.Conflict(c, "idempotency_in_progress", "Requisição já em processamento.")
			return
		}

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency release failed")
			}
			return
		}

		if err := store.Complete(ctx, scoped, idempotency.Response{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
			Fingerprint: fingerprint,
		}, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotency store failed")
		}
	}
}
