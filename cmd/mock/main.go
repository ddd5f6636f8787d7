package main

import (
	"carbonhero/internal/dto/backend_v1_dto"
	"carbonhero/internal/env"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func userDataHandler(w http.ResponseWriter, r *http.Request) {
	var data backend_v1_dto.UserData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeResponse(w, http.StatusBadRequest, backend_v1_dto.Response{Status: "error", Message: "Invalid request body"})
		return
	}
	time.Sleep(100 * time.Millisecond)

	log.Info().
		Str("user_id", data.UserID).
		Str("record_id", data.RecordID).
		Float64("carbon_footprint", data.CarbonFootprint).
		Str("level", data.FootprintLevel).
		Msg("user data received")

	writeResponse(w, http.StatusOK, backend_v1_dto.Response{Status: "success"})
}

func writeResponse(w http.ResponseWriter, code int, response backend_v1_dto.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response)
}

func main() {
	env.LoadEnv()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	port := env.GetEnv("MOCK_PORT", "8081")

	r := chi.NewRouter()
	r.Post("/api/user-data", userDataHandler)

	log.Info().Str("port", port).Msg("Mock backend running")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal().Err(err).Msg("Mock backend crashed")
	}
}
