package inference

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/hoopsight/projection-api/internal/models"
)

// RedisClient defines the subset of the Redis client used to fetch model weights
type RedisClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// LoadLinearModelFromRedis reads a model published as a hash:
//
//	version        "2024-04-15"
//	features       "rolling_avg_points,...,rest_days"
//	intercepts     "1.2,0.4,0.9"
//	coef:points    "0.61,0.02,...,0.11"
//	coef:assists   "..."
//	coef:rebounds  "..."
func LoadLinearModelFromRedis(ctx context.Context, client RedisClient, key string) (*LinearModel, error) {
	fields, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read model hash %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("model hash %s is empty", key)
	}

	m := &LinearModel{Version: fields["version"]}
	if f := fields["features"]; f != "" {
		m.Features = splitList(f)
	}
	m.Targets = TargetNames[:]

	if m.Intercepts, err = parseFloats(fields["intercepts"]); err != nil {
		return nil, fmt.Errorf("intercepts: %w", err)
	}
	m.Coefficients = make([][]float64, 0, models.TargetCount)
	for _, target := range TargetNames {
		row, err := parseFloats(fields["coef:"+target])
		if err != nil {
			return nil, fmt.Errorf("coef:%s: %w", target, err)
		}
		m.Coefficients = append(m.Coefficients, row)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model hash %s: %w", key, err)
	}
	return m, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("missing")
	}
	parts := splitList(s)
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
