package main

import (
	"Remitente/CronJobs"
	"Remitente/FiberConfig"
	"Remitente/Models"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	store := Models.Connect()

	retentionDays := 90
	if raw := os.Getenv("CAMPAIGN_LOG_RETENTION_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			retentionDays = parsed
		}
	}
	pruner := CronJobs.NewLogPruner(store, retentionDays, false)
	if err := pruner.Start(); err != nil {
		log.Println("Failed to start campaign log pruner:", err)
	}

	FiberConfig.FiberConfig(store)
}
