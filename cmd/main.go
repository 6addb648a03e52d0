package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lulc_service/internal/api"
	"lulc_service/internal/core"
	"lulc_service/internal/domain/repository"
	"lulc_service/internal/infrastructure/imagery"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	postgresRepo := repository.NewPostgresRepository(os.Getenv("POSTGRES_URL"))
	osmRepo := repository.NewOverpassRepository(os.Getenv("OVERPASS_URL"), 30*time.Second)
	imageryClient := imagery.NewHTTPImageryClient(os.Getenv("IMAGERY_SERVICE_URL"))

	recorder := repository.NewPostgresAnalysisRecorder(postgresRepo.DB)
	saveResults := os.Getenv("SAVE_ANALYSIS_RESULTS") == "true"

	analysisService := core.NewAnalysisService(
		imageryClient,
		osmRepo,
		recorder,
		saveResults,
	)

	handler := api.NewHandler(analysisService)
	http.HandleFunc("/api/analyze", handler.Analyze)
	http.HandleFunc("/api/classify", handler.Classify)
	http.HandleFunc("/api/runs", handler.Runs)

	log.Println("Starting server on :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
