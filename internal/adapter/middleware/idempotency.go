package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	inFlightTTL  = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second

	HeaderReplay = "Idempotent-Replay"
)

// teeWriter copies everything the handler writes so it can be stored.
type teeWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Idempotency replays the stored response of a mutating request that repeats
// an Ax-Request-Id. Keys are scoped to method, path and caller, so it must run
// after Auth. 5xx answers are never stored and may be retried with the same id.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, lockTTL: inFlightTTL, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID, err := parseRequestID(req.Header.Get("Ax-Request-Id"))
			if err != nil {
				return abort(c, http.StatusBadRequest, err.Error())
			}
			reqAt, err := parseRequestAt(req.Header.Get("Ax-Request-At"))
			if err != nil {
				return abort(c, http.StatusBadRequest, err.Error())
			}
			if d := time.Since(reqAt); d > maxClockSkew || d < -maxClockSkew {
				return abort(c, http.StatusBadRequest, "Ax-Request-At too skewed")
			}
			actor, ok := ActorFrom(c)
			if !ok {
				return abort(c, http.StatusUnauthorized, "authentication required")
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return abort(c, http.StatusBadRequest, "unreadable request body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			key := replayKey(req.Method, req.URL.Path, actor.UserID, reqID)
			fp := fingerprint(body)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			claimed, err := store.claim(ctx, key, replayEntry{
				Fingerprint: fp,
				RequestID:   reqID,
				RequestAt:   reqAt,
				StoredAt:    time.Now().UTC(),
			})
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("idempotency store unavailable")
				return abort(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !claimed {
				prev, err := store.load(ctx, key)
				if err != nil {
					log.Warn().Err(err).Str("key", key).Msg("idempotency entry unreadable")
				}
				return replay(c, prev, fp)
			}

			tee := &teeWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = tee
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be cancelled here
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()
			if tee.status >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("idempotency lock not released")
				}
				return nil
			}
			err = store.finish(bg, key, replayEntry{
				Done:        true,
				Status:      tee.status,
				ContentType: tee.Header().Get(echo.HeaderContentType),
				Body:        tee.buf.Bytes(),
				Fingerprint: fp,
				RequestID:   reqID,
				RequestAt:   reqAt,
				StoredAt:    time.Now().UTC(),
			})
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency result not stored")
			}
			return nil
		}
	}
}

func replay(c echo.Context, prev replayEntry, fp string) error {
	if prev.Fingerprint != "" && prev.Fingerprint != fp {
		return abort(c, http.StatusConflict, "Ax-Request-Id reused with different body")
	}
	if !prev.replayable() {
		return abort(c, http.StatusConflict, "request is already in progress")
	}
	ct := prev.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(HeaderReplay, "true")
	return c.Blob(prev.Status, ct, prev.Body)
}
