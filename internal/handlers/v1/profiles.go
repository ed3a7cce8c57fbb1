package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/profile"
)

// GetProfile returns a player's profile with their leaderboard standing
func (h *Handler) GetProfile(c *gin.Context) {
	out, err := h.profileService.GetProfile(c.Request.Context(), &profile.GetProfileInput{
		PlayerID: c.Param("playerID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"profile": out.Profile,
		"rank":    out.Rank,
		"score":   out.Score,
	})
}

type updateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
}

// UpdateProfile patches a profile's presentation fields
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.profileService.UpdateProfile(c.Request.Context(), &profile.UpdateProfileInput{
		PlayerID:    c.Param("playerID"),
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"profile": out.Profile})
}

// GetLeaderboard returns the top collection scores with display names
func (h *Handler) GetLeaderboard(c *gin.Context) {
	var limit, offset int64
	for name, dst := range map[string]*int64{"limit": &limit, "offset": &offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, errors.InvalidArgumentf("%s must be an integer, got %q", name, raw))
			return
		}
		*dst = v
	}

	out, err := h.profileService.GetLeaderboard(c.Request.Context(), &profile.GetLeaderboardInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"entries": out.Rows})
}
