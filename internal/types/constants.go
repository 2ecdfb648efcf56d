package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Roles a user account can hold.
const (
	RoleAdmin       = "admin"
	RoleAdultLeader = "adult_leader"
	RoleYouth       = "youth"
	RoleParent      = "parent"
)

// Channel types.
const (
	ChannelTypePublic     = "public"
	ChannelTypeUnit       = "unit"
	ChannelTypeLeadership = "leadership"
	ChannelTypeParent     = "parent"
)

// Contingent youth capacity reported by the stats endpoint.
const YouthCapacity = 36

// Default secrets assigned on account creation and password reset.
const (
	DefaultPassword      = "Jambo2026!"
	AdminDefaultPassword = "The3Bears"
)

var AllRoles = []string{RoleAdmin, RoleAdultLeader, RoleYouth, RoleParent}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
