package middleware

import (
	"errors"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit    = "limiter"
	headerRetryAfter     = "Retry-After"
	unknownClientAgent   = "unknown"
	forwardedForSplitter = ","
)

// RateLimit counts requests per client in a fixed window kept in Redis. When
// the cache is unavailable requests pass through unlimited.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, ok := a.countRequest(r, key)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			window := strconv.Itoa(limiter.WindowSeconds)

			if count > limiter.MaxRequests {
				log.Warn().Str("key", key).Int("count", count).Msg("rate limit exceeded")

				w.Header().Set(headerRetryAfter, window)
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), key, count, limiter.WindowSeconds); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, window)

			next.ServeHTTP(w, r)
		})
	}
}

// countRequest returns the request's position in the current window. ok is
// false when the counter could not be read.
func (a *appMiddleware) countRequest(r *http.Request, key string) (count int, ok bool) {
	err := a.cache.Get(r.Context(), key, &count)

	switch {
	case errors.Is(err, cache.Nil):
		return 1, true
	case err != nil:
		log.Warn().Err(err).Msg("rate limiter cache unavailable")

		return 0, false
	}

	return count + 1, true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != constant.Empty {
		return ua
	}

	return unknownClientAgent
}

// getClientIP trusts the first X-Forwarded-For hop, then X-Real-IP.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, forwardedForSplitter)

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
