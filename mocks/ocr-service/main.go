package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8091"
	defaultAPIKey    = "ocr-service-secret-key"
	defaultLatencyMs = "150"
)

type RecognizeRequest struct {
	Image string `json:"image"`
}

type RecognizeResponse struct {
	Lines []string `json:"lines"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey    = getEnv("API_KEY", defaultAPIKey)
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/v1/recognize", handleRecognize)

	log.Printf("📄 Mock OCR Service starting on port %s", port)
	log.Printf("📝 API Key: %s", apiKey)
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
		"service": "ocr-service",
		"version": "1.0.0",
	})
}

// testImages contains predefined line sets for specific image payloads.
// These "magic" payloads let e2e tests control the mock's behavior without
// shipping real document photographs.
var testImages = map[string][]string{
	"AADHAAR_OK": {
		"Government of India",
		"Ravi Kumar",
		"DOB: 15/08/1985",
		"Male",
		"S/O Mohan Kumar, 12 Gandhi Road",
		"Jaipur, Rajasthan",
		"302015",
		"1234 5678 9012",
	},
	"AADHAAR_NONAME": {
		"Government of India",
		"DOB: 15/08/1985",
		"Female",
		"1234 5678 9012",
	},
	"PAN_OK": {
		"INCOME TAX DEPARTMENT",
		"GOVT. OF INDIA",
		"Name",
		"RAVI KUMAR SHARMA",
		"Father's Name",
		"MOHAN KUMAR",
		"ABCDE1234F",
	},
	"PAN_NONUMBER": {
		"INCOME TAX DEPARTMENT",
		"Name",
		"RAVI KUMAR SHARMA",
	},
	"GIBBERISH": {
		"lorem ipsum dolor",
		"sit amet 42",
	},
	"EMPTY": {},
}

// failureImages trigger error responses for resilience testing.
var failureImages = map[string]int{
	"UNREADABLE": http.StatusUnprocessableEntity,
	"RATELIMIT":  http.StatusTooManyRequests,
	"OUTAGE":     http.StatusServiceUnavailable,
}

func handleRecognize(w http.ResponseWriter, r *http.Request) {
	// Simulate latency
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	log.Printf("📥 Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("X-API-Key")
	if authHeader == "" {
		sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
		return
	}
	if authHeader != apiKey {
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	var req RecognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		sendError(w, "image is required", http.StatusBadRequest)
		return
	}

	if code, ok := failureImages[req.Image]; ok {
		if code == http.StatusUnprocessableEntity {
			sendError(w, "no readable text detected in image", code)
		} else {
			sendError(w, http.StatusText(code), code)
		}
		log.Printf("🧪 Failure payload %s -> %d", req.Image, code)
		return
	}

	var lines []string
	if testLines, ok := testImages[req.Image]; ok {
		lines = testLines
		log.Printf("🧪 Using test line set for: %s", req.Image)
	} else {
		lines = generateAadhaarLines(req.Image)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(RecognizeResponse{Lines: lines})

	log.Printf("✅ Recognized %d lines", len(lines))
}

// generateAadhaarLines produces a deterministic but pseudo-random Aadhaar
// card transcript from the image payload, so arbitrary inputs still exercise
// the full extraction path.
func generateAadhaarLines(image string) []string {
	hash := sha256.Sum256([]byte(image))
	hashInt := int(hash[0])

	firstNames := []string{"Ravi", "Priya", "Amit", "Sunita", "Vijay", "Anita", "Rahul", "Kavita", "Suresh", "Meena"}
	lastNames := []string{"Kumar", "Sharma", "Patel", "Singh", "Gupta", "Verma", "Reddy", "Nair", "Joshi", "Das"}
	cities := []string{"Jaipur", "Mumbai", "Delhi", "Chennai", "Kolkata", "Pune", "Lucknow", "Bhopal", "Indore", "Nagpur"}

	name := fmt.Sprintf("%s %s", firstNames[hashInt%len(firstNames)], lastNames[(hashInt*3)%len(lastNames)])
	gender := "Male"
	if hashInt%2 == 0 {
		gender = "Female"
	}

	birthYear := 1950 + (hashInt % 55)
	birthMonth := 1 + (hashInt % 12)
	birthDay := 1 + (hashInt % 28)

	number := fmt.Sprintf("%04d %04d %04d",
		1000+int(hash[1])*13%9000,
		1000+int(hash[2])*17%9000,
		1000+int(hash[3])*19%9000,
	)
	pincode := 110000 + (hashInt*137)%780000

	return []string{
		"Government of India",
		name,
		fmt.Sprintf("DOB: %02d/%02d/%04d", birthDay, birthMonth, birthYear),
		gender,
		fmt.Sprintf("%s, %06d", cities[(hashInt*7)%len(cities)], pincode),
		number,
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
