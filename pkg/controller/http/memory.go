package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
	"github.com/keepsake-app/keepsake/pkg/usecase"
	"github.com/keepsake-app/keepsake/pkg/utils/safe"
)

type memoryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	ImagePublicID string    `json:"imagePublicId"`
	Special       string    `json:"special,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toMemoryResponse(m *model.Memory) memoryResponse {
	return memoryResponse{
		ID:            m.ID.String(),
		Title:         m.Title,
		Date:          m.Date,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		ImagePublicID: m.ImagePublicID,
		Special:       m.Special,
		CreatedAt:     m.CreatedAt,
	}
}

func toMemoryResponses(memories []*model.Memory) []memoryResponse {
	resp := make([]memoryResponse, len(memories))
	for i, m := range memories {
		resp[i] = toMemoryResponse(m)
	}
	return resp
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "unparsable date", goerr.V("date", value))
	}
	return ts, nil
}

// readImageFile pulls the optional "image" part out of a parsed multipart
// form. A missing part yields a nil blob, not an error; the use case layer
// decides whether the image was required.
func readImageFile(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read image part")
	}
	defer safe.Close(r.Context(), file)

	blob, err := io.ReadAll(file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read image body")
	}
	return blob, nil
}

func parseMultipart(r *http.Request, maxSize int64) error {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return goerr.Wrap(err, "multipart body exceeds upload limit", goerr.V("limit", maxSize))
		}
		return goerr.Wrap(err, "failed to parse multipart form")
	}
	return nil
}

func (s *Server) listMemories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memories, err := s.uc.Memory.ListMemories(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toMemoryResponses(memories))
}

func (s *Server) createMemory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := parseMultipart(r, s.maxUploadSize); err != nil {
		respondError(ctx, w, err)
		return
	}

	blob, err := readImageFile(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	input := usecase.CreateMemoryInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Special:     r.FormValue("special"),
		Image:       blob,
	}
	if raw := r.FormValue("date"); raw != "" {
		ts, err := parseDate(raw)
		if err != nil {
			respondError(ctx, w, err)
			return
		}
		input.Date = ts
	}

	created, err := s.uc.Memory.CreateMemory(ctx, input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toMemoryResponse(created))
}

func (s *Server) updateMemory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MemoryID(chi.URLParam(r, "id"))

	if err := parseMultipart(r, s.maxUploadSize); err != nil {
		respondError(ctx, w, err)
		return
	}

	blob, err := readImageFile(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	input := usecase.UpdateMemoryInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Special:     r.FormValue("special"),
		Image:       blob,
	}
	if raw := r.FormValue("date"); raw != "" {
		ts, err := parseDate(raw)
		if err != nil {
			respondError(ctx, w, err)
			return
		}
		input.Date = ts
	}

	updated, err := s.uc.Memory.UpdateMemory(ctx, id, input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toMemoryResponse(updated))
}

func (s *Server) deleteMemory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.MemoryID(chi.URLParam(r, "id"))

	if err := s.uc.Memory.DeleteMemory(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, messageResponse{Message: "Memory deleted successfully"})
}
