package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const testManifest = `
version: "2024-04-15"
features: [rolling_avg_points, rolling_avg_assists, rolling_avg_rebounds, last_points, last_assists, last_rebounds, rest_days]
targets: [points, assists, rebounds]
coefficients:
  - [1, 0, 0, 0, 0, 0, 0.5]
  - [0, 1, 0, 0, 0, 0, 0]
  - [0, 0, 1, 0, 0, 0, 0]
intercepts: [0.5, 0, -1]
`

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadLinearModel(t *testing.T) {
	m, err := LoadLinearModel(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("LoadLinearModel: %v", err)
	}

	out, err := m.Predict(context.Background(), [][]float64{{20, 5, 8, 30, 2, 10, 2}})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := []float64{21.5, 5, 7}
	if len(out) != 1 || len(out[0]) != 3 {
		t.Fatalf("output shape = %dx?, want 1x3", len(out))
	}
	for i := range want {
		if out[0][i] != want[i] {
			t.Errorf("out[0][%d] = %v, want %v", i, out[0][i], want[i])
		}
	}
}

func TestLoadLinearModel_JSONManifest(t *testing.T) {
	body := `{"version": "v1", "coefficients": [[0,0,0,0,0,0,0],[0,0,0,0,0,0,0],[0,0,0,0,0,0,0]], "intercepts": [1,2,3]}`
	m, err := LoadLinearModel(writeManifest(t, body))
	if err != nil {
		t.Fatalf("LoadLinearModel: %v", err)
	}
	if m.Version != "v1" {
		t.Errorf("Version = %q, want v1", m.Version)
	}
}

func TestLoadLinearModel_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "Reordered Features",
			body:    strings.Replace(testManifest, "rolling_avg_points, rolling_avg_assists", "rolling_avg_assists, rolling_avg_points", 1),
			wantErr: "feature 0",
		},
		{
			name:    "Short Coefficient Row",
			body:    strings.Replace(testManifest, "[0, 1, 0, 0, 0, 0, 0]", "[0, 1, 0]", 1),
			wantErr: "coefficient row 1",
		},
		{
			name:    "Missing Intercept",
			body:    strings.Replace(testManifest, "[0.5, 0, -1]", "[0.5, 0]", 1),
			wantErr: "intercepts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLinearModel(writeManifest(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLinearModelPredict_WrongWidth(t *testing.T) {
	m, err := LoadLinearModel(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("LoadLinearModel: %v", err)
	}
	if _, err := m.Predict(context.Background(), [][]float64{{1, 2, 3}}); err == nil {
		t.Error("expected error for a 3-wide row")
	}
}

// MockRedisClient returns a fixed hash
type MockRedisClient struct {
	Hash map[string]string
	Err  error
}

func (m *MockRedisClient) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	cmd := redis.NewMapStringStringCmd(ctx, "hgetall", key)
	if m.Err != nil {
		cmd.SetErr(m.Err)
		return cmd
	}
	cmd.SetVal(m.Hash)
	return cmd
}

func TestLoadLinearModelFromRedis(t *testing.T) {
	client := &MockRedisClient{Hash: map[string]string{
		"version":       "r1",
		"features":      "rolling_avg_points,rolling_avg_assists,rolling_avg_rebounds,last_points,last_assists,last_rebounds,rest_days",
		"intercepts":    "1,2,3",
		"coef:points":   "1,0,0,0,0,0,0",
		"coef:assists":  "0,1,0,0,0,0,0",
		"coef:rebounds": "0,0,1,0,0,0,0",
	}}

	m, err := LoadLinearModelFromRedis(context.Background(), client, "projection:model")
	if err != nil {
		t.Fatalf("LoadLinearModelFromRedis: %v", err)
	}
	out, err := m.Predict(context.Background(), [][]float64{{10, 4, 6, 0, 0, 0, 1}})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out[0][0] != 11 || out[0][1] != 6 || out[0][2] != 9 {
		t.Errorf("Predict = %v, want [11 6 9]", out[0])
	}
}

func TestLoadLinearModelFromRedis_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *MockRedisClient
	}{
		{"Redis Error", &MockRedisClient{Err: errors.New("connection refused")}},
		{"Empty Hash", &MockRedisClient{Hash: map[string]string{}}},
		{"Missing Row", &MockRedisClient{Hash: map[string]string{
			"intercepts":  "1,2,3",
			"coef:points": "1,0,0,0,0,0,0",
		}}},
		{"Bad Number", &MockRedisClient{Hash: map[string]string{
			"intercepts":    "1,two,3",
			"coef:points":   "1,0,0,0,0,0,0",
			"coef:assists":  "0,1,0,0,0,0,0",
			"coef:rebounds": "0,0,1,0,0,0,0",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadLinearModelFromRedis(context.Background(), tt.client, "k"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRemoteModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Instances) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(remoteResponse{Error: "bad input"})
			return
		}
		json.NewEncoder(w).Encode(remoteResponse{Predictions: [][]float64{{req.Instances[0][0] + 1, 2, 3}}})
	}))
	defer srv.Close()

	m := NewRemoteModel(srv.URL, 0, zap.NewNop())
	out, err := m.Predict(context.Background(), [][]float64{{20, 0, 0, 0, 0, 0, 0}})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out[0][0] != 21 {
		t.Errorf("out[0][0] = %v, want 21", out[0][0])
	}

	if _, err := m.Predict(context.Background(), [][]float64{}); err == nil {
		t.Error("expected error for rejected request")
	}
}
