package shared

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...any) string {
	keys := make([]string, 0, len(parts)+1)
	keys = append(keys, prefix)

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, ":")
}

// BuildCacheKeyWithQuery derives a stable key from the listing parameters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		return BuildCacheKey(prefix, params.Page, params.Limit, where)
	}

	return BuildCacheKey(prefix, fmt.Sprintf("%x", sha256.Sum256(payload)))
}

// InvalidateCaches drops every key stored under prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	pattern := prefix + constant.Asterix
	if err := c.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate caches")
	}
}
