package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	Status                string `json:"status"`
	InternalServerLatency string `json:"internal_server_latency"`
	Uptime                string `json:"uptime"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping() time.Duration {
	start := time.Now()
	duration := time.Since(start)
	return duration
}

func Status(c *gin.Context) {
	data := StatusResponse{
		Status:                "running",
		InternalServerLatency: ping().String(),
		Uptime:                uptime().Truncate(time.Second).String(),
	}
	response := CreateSuccessResponse(c, data)
	c.JSON(http.StatusOK, response)
}

// Home describes the service for health checks hitting the root path
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, CreateSuccessResponse(c, gin.H{
		"service": "Dining API",
		"status":  "running",
		"endpoints": []string{
			"/api/dining-halls",
			"/api/refresh",
			"/api/ratings",
			"/api/ratings/averages",
			"/api/ratings/user",
			"/api/leaderboard",
			"/api/user/stats",
			"/api/usda-search",
			"/api/status",
		},
	}))
}

// RegisterRoutes mounts the service-wide routes on the /api group
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", Status)
}

//This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
