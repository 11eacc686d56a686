package main

import (
	"fmt"
	"net/http"

	"github.com/opsdash/checkin-report-go/internal/config"
	appHTTP "github.com/opsdash/checkin-report-go/internal/handler/http"
	"github.com/opsdash/checkin-report-go/internal/repository/memory"
	analysisService "github.com/opsdash/checkin-report-go/internal/service/analysis"
	ingestService "github.com/opsdash/checkin-report-go/internal/service/ingest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	store := memory.NewDatasetStore()

	ingestSvc := ingestService.NewIngestService(store)
	analysisSvc := analysisService.NewAnalysisService(store)

	datasetHandler := appHTTP.NewDatasetHandler(ingestSvc, cfg.HTTP.MaxUploadBytes)
	reportHandler := appHTTP.NewReportHandler(analysisSvc, cfg.Report)

	router := appHTTP.NewRouter(cfg, datasetHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
