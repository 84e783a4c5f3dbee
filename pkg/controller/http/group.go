package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
	"github.com/keepsake-app/keepsake/pkg/usecase"
)

type groupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemoryIDs   []string  `json:"memoryIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toGroupResponse(g *model.Group) groupResponse {
	ids := make([]string, len(g.MemoryIDs))
	for i, id := range g.MemoryIDs {
		ids[i] = id.String()
	}
	return groupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		MemoryIDs:   ids,
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupResponses(groups []*model.Group) []groupResponse {
	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	return resp
}

func toMemoryIDs(raw []string) []types.MemoryID {
	ids := make([]types.MemoryID, len(raw))
	for i, s := range raw {
		ids[i] = types.MemoryID(s)
	}
	return ids
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := s.uc.Group.ListGroups(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toGroupResponses(groups))
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		MemoryIDs   []string `json:"memoryIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(err, "failed to decode group request"))
		return
	}

	created, err := s.uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		MemoryIDs:   toMemoryIDs(req.MemoryIDs),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toGroupResponse(created))
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.GroupID(chi.URLParam(r, "id"))

	// Pointer fields distinguish "absent" from "set to empty": omitting
	// memoryIds keeps the stored list, sending [] clears it.
	var req struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		MemoryIDs   *[]string `json:"memoryIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(err, "failed to decode group request"))
		return
	}

	input := usecase.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.MemoryIDs != nil {
		ids := toMemoryIDs(*req.MemoryIDs)
		input.MemoryIDs = &ids
	}

	updated, err := s.uc.Group.UpdateGroup(ctx, id, input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toGroupResponse(updated))
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.GroupID(chi.URLParam(r, "id"))

	if err := s.uc.Group.DeleteGroup(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, messageResponse{Message: "Group deleted successfully"})
}
