package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/keepsake-app/keepsake/pkg/usecase"
	"github.com/keepsake-app/keepsake/pkg/utils/errutil"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.Handle(ctx, err, "failed to marshal response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Server error"}`)) //nolint:errcheck
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// respondError maps a use case failure to the fixed external error shape.
// The full error is logged server-side; the caller only sees the category.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.Handle(ctx, err, "request failed")

	switch {
	case errors.Is(err, usecase.ErrImageRequired):
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "Image is required"})
	case errors.Is(err, usecase.ErrMemoryNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "Memory not found"})
	case errors.Is(err, usecase.ErrGroupNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "Group not found"})
	default:
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
}
