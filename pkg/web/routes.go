package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// LeaderboardEntry is one row of the leaderboard endpoint
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"memberId"`
	Score    int64  `json:"score"`
}

// setupRoutes registers the API routes
func (s *Server) setupRoutes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/status", s.statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", s.botInfoHandler)

		guilds := api.Group("/guilds/:guild")
		guilds.GET("/config", s.guildConfigHandler)
		guilds.GET("/leaderboard", s.leaderboardHandler)
		guilds.GET("/members/:member", s.memberHandler)
	}
}

// statusHandler returns the bot and store status
func (s *Server) statusHandler(c *gin.Context) {
	storeStatus, storeOnline := "unknown", false
	if s.store != nil {
		storeStatus, storeOnline = s.store.Status(c.Request.Context())
	}

	botOnline := s.bot != nil && s.bot.IsReady()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"store": gin.H{
			"status":   storeStatus,
			"isOnline": storeOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Railmod Go is running",
	})
}

// botInfoHandler returns information about the bot
func (s *Server) botInfoHandler(c *gin.Context) {
	if s.bot == nil || !s.bot.IsReady() || s.bot.BotUser() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := s.bot.BotUser()
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"guilds":   s.bot.GuildCount(),
		"isReady":  true,
	})
}

// guildConfigHandler returns the prefix, points label and admin roles of a guild
func (s *Server) guildConfigHandler(c *gin.Context) {
	ctx := c.Request.Context()
	guildID := c.Param("guild")

	c.JSON(http.StatusOK, gin.H{
		"guildId":     guildID,
		"prefix":      s.state.Prefix(ctx, guildID),
		"pointsLabel": s.state.PointsLabel(ctx, guildID),
		"adminRoles":  s.state.AdminRoles(ctx, guildID),
	})
}

// leaderboardHandler returns the top scores of a guild; ?n= sets the size
func (s *Server) leaderboardHandler(c *gin.Context) {
	ctx := c.Request.Context()
	guildID := c.Param("guild")

	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "n must be a whole number between 1 and 100.",
				"status":  http.StatusBadRequest,
			})
			return
		}
		n = parsed
	}

	board := s.state.Top(ctx, guildID, n)
	entries := make([]LeaderboardEntry, 0, len(board.Standings))
	for i, standing := range board.Standings {
		entries = append(entries, LeaderboardEntry{Rank: i + 1, MemberID: standing.MemberID, Score: standing.Score})
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": guildID,
		"label":   s.state.PointsLabel(ctx, guildID),
		"empty":   board.Empty(),
		"entries": entries,
	})
}

// memberHandler returns the score and moderation record of a member
func (s *Server) memberHandler(c *gin.Context) {
	ctx := c.Request.Context()
	guildID := c.Param("guild")
	memberID := c.Param("member")

	warnings := s.state.Warnings(ctx, guildID, memberID)
	body := gin.H{
		"guildId":  guildID,
		"memberId": memberID,
		"score":    s.state.Score(ctx, guildID, memberID),
		"warnings": warnings,
		"severity": state.ClassifySeverity(len(warnings)).String(),
		"banned":   s.state.IsBanned(ctx, guildID, memberID),
	}
	if rank, ok := s.state.Rank(ctx, guildID, memberID); ok {
		body["rank"] = rank
	}

	c.JSON(http.StatusOK, body)
}
