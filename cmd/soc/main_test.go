package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"socpredict/internal/apperrors"
	"socpredict/internal/config"
)

// execute runs the command tree with args against an absent config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger = zap.NewNop()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yaml")))
	err := root.Execute()
	return out.String(), err
}

func predictServer(t *testing.T, body string) (*httptest.Server, *map[string]float64) {
	t.Helper()
	got := map[string]float64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health/":
			_, _ = io.WriteString(w, `{"status": "ok", "message": "API is running, models are loaded"}`)
		default:
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = io.WriteString(w, body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestPredictFlags(t *testing.T) {
	srv, got := predictServer(t, `{"predictions": {"LinearRegression": 12.3, "RandomForest": 15.0, "GradientBoosting": 13.7}}`)

	out, err := execute(t, "predict", "--endpoint", srv.URL+"/predict/",
		"--tpi", "1", "--tri", "2", "--twi", "3", "--vdepth", "40",
		"--vis", "0.1", "--ndvi-max", "0.9", "--ndvi-median", "0", "--ndvi-sd", "0.2")
	if err != nil {
		t.Fatalf("predict returned error: %v", err)
	}

	for _, want := range []string{"Linear Regression: 12.3%", "Random Forest: 15%", "Gradient Boosting: 13.7%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}
	if len(*got) != 8 || (*got)["VDepth"] != 40 {
		t.Fatalf("unexpected request body: %v", *got)
	}
	if _, ok := (*got)["NDVI_median"]; !ok {
		t.Fatalf("zero-valued NDVI_median missing from body: %v", *got)
	}
}

func TestPredictRandomJSON(t *testing.T) {
	srv, _ := predictServer(t, `{"predictions": {"LinearRegression": 10, "RandomForest": 11}}`)

	out, err := execute(t, "predict", "--random", "--json", "--endpoint", srv.URL+"/predict/")
	if err != nil {
		t.Fatalf("predict returned error: %v", err)
	}

	var res map[string]*float64
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res["GradientBoosting"] != nil || res["RandomForest"] == nil || *res["RandomForest"] != 11 {
		t.Fatalf("unexpected JSON: %s", out)
	}
}

func TestPredictInputFile(t *testing.T) {
	srv, got := predictServer(t, `{"predictions": {"LinearRegression": 1, "RandomForest": 2, "GradientBoosting": 3}}`)

	path := filepath.Join(t.TempDir(), "features.json")
	record := `{"TPI": 1, "TRI": 2, "TWI": 3, "VDepth": 40, "VIS": 0.1, "NDVI_max": 0.9, "NDVI_median": 0.5, "NDVI_sd": 0.2}`
	if err := os.WriteFile(path, []byte(record), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := execute(t, "predict", "--input", path, "--twi", "9", "--endpoint", srv.URL+"/predict/")
	if err != nil {
		t.Fatalf("predict returned error: %v", err)
	}
	if len(*got) != 8 || (*got)["TWI"] != 9 || (*got)["VDepth"] != 40 {
		t.Fatalf("unexpected request body: %v", *got)
	}
}

func TestPredictInputStdinPartial(t *testing.T) {
	srv, got := predictServer(t, `{}`)

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(`{"TPI": 1, "TRI": 2}`))
	root.SetArgs([]string{"predict", "--input", "-", "--endpoint", srv.URL + "/predict/",
		"--config", filepath.Join(t.TempDir(), "config.yaml")})

	err := root.Execute()
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(*got) != 0 {
		t.Fatalf("no request expected, got body %v", *got)
	}
}

func TestPredictInputMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.json")
	if err := os.WriteFile(path, []byte("TPI=1"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := execute(t, "predict", "--input", path)
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	run := func(args ...string) (string, error) {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(append(args, "--config", path))
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("config", "init")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected path in output, got: %s", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Service.Endpoint != config.DefaultConfig().Service.Endpoint {
		t.Fatalf("unexpected endpoint %q", cfg.Service.Endpoint)
	}

	if _, err := run("config", "init"); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, err := run("config", "init", "--force"); err != nil {
		t.Fatalf("config init --force returned error: %v", err)
	}

	out, err = run("config", "path")
	if err != nil || strings.TrimSpace(out) != path {
		t.Fatalf("config path = %q, %v", out, err)
	}
}

func TestPredictMissingFields(t *testing.T) {
	srv, got := predictServer(t, `{}`)

	_, err := execute(t, "predict", "--tpi", "1", "--endpoint", srv.URL+"/predict/")
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(*got) != 0 {
		t.Fatalf("no request expected, got body %v", *got)
	}
}

func TestPredictServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := execute(t, "predict", "--random", "--endpoint", url+"/predict/")
	if !apperrors.IsKind(err, apperrors.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestPredictRejectsBadEndpoint(t *testing.T) {
	_, err := execute(t, "predict", "--random", "--endpoint", "ftp://nowhere")
	if !apperrors.IsKind(err, apperrors.KindConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := predictServer(t, `{}`)

	out, err := execute(t, "health", "--health-endpoint", srv.URL+"/health/")
	if err != nil {
		t.Fatalf("health returned error: %v", err)
	}
	if !strings.Contains(out, "online: API is running") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if strings.TrimSpace(out) != "soc dev" {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestTimingsFor(t *testing.T) {
	flags := &rootFlags{configPath: filepath.Join(t.TempDir(), "config.yaml"), fast: true}
	cfg, _, err := loadConfig(flags)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	fast := timingsFor(cfg, true)
	if fast.Splash != 0 || fast.LandingDelay != 0 {
		t.Fatalf("fast timings not zero: %+v", fast)
	}
	slow := timingsFor(cfg, false)
	if slow.Splash == 0 || len(slow.Phases) != 3 {
		t.Fatalf("default timings wrong: %+v", slow)
	}
}
