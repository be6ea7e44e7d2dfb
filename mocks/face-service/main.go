package main

import (
	"crypto/sha256"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8092"
	defaultLatencyMs = "250"
)

type CompareRequest struct {
	Selfie   string `json:"selfie"`
	Document string `json:"document"`
	Model    string `json:"model"`
}

type CompareResponse struct {
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Error     string  `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

// modelThresholds mirrors the per-model decision thresholds of a typical
// face-embedding stack.
var modelThresholds = map[string]float64{
	"Facenet512": 0.30,
	"VGG-Face":   0.40,
}

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/v1/compare", handleCompare)

	log.Printf("🙂 Mock Face Service starting on port %s", port)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "face-service",
		"version": "1.0.0",
	})
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	// Simulate latency; embedding computation dominates real response time
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	log.Printf("📥 Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Selfie == "" || req.Document == "" {
		sendError(w, "selfie and document are required", http.StatusBadRequest)
		return
	}

	threshold, ok := modelThresholds[req.Model]
	if !ok {
		sendError(w, "unknown model: "+req.Model, http.StatusBadRequest)
		return
	}

	// Magic payloads let e2e tests steer the verdict and the fallback path.
	switch req.Selfie {
	case "NOFACE":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(CompareResponse{Error: "no face detected in selfie"})
		log.Printf("🧪 No-face payload -> 422")
		return
	case "FACENET_DOWN":
		// Only the primary model fails, exercising the ordered fallback.
		if req.Model == "Facenet512" {
			sendError(w, "model backend unavailable", http.StatusServiceUnavailable)
			log.Printf("🧪 Facenet512 outage payload -> 503")
			return
		}
	case "OUTAGE":
		sendError(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := compare(req, threshold)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)

	log.Printf("✅ Compared with %s: verified=%v distance=%.3f", req.Model, resp.Verified, resp.Distance)
}

// compare derives a deterministic distance from the two payloads. Identical
// payloads and the MATCH magic selfie land under the threshold; MISMATCH
// lands well over it; anything else hashes into the 0..2x threshold band.
func compare(req CompareRequest, threshold float64) CompareResponse {
	var distance float64
	switch {
	case req.Selfie == "MATCH" || req.Selfie == req.Document:
		distance = threshold * 0.4
	case req.Selfie == "MISMATCH":
		distance = threshold * 1.8
	default:
		hash := sha256.Sum256([]byte(req.Selfie + "|" + req.Document))
		distance = float64(int(hash[0])%200) / 100.0 * threshold
	}

	return CompareResponse{
		Verified:  distance <= threshold,
		Distance:  distance,
		Threshold: threshold,
	}
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("❌ Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
