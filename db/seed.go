package db

import (
	"errors"
	"log"

	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDatabase inserts the default admin, sample roster, units, channels and
// info cards on first boot. A database that already has any user is left
// untouched.
func SeedDatabase() error {
	var existing models.User

	err := DB.First(&existing).Error

	if err == nil {
		log.Println("Database already seeded, skipping")
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Seeding default data...")

	defaultHash, err := bcrypt.GenerateFromPassword([]byte(types.DefaultPassword), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		adminUsername := "admin"

		users := []models.User{
			{
				ID:           "admin1",
				Username:     &adminUsername,
				FirstName:    "Admin",
				Email:        "admin@jambohub.org",
				PasswordHash: string(defaultHash),
				Role:         types.RoleAdmin,
				Unit:         "VAHC Leadership",
				Active:       true,
			},
			{ID: "leader1", FirstName: "Kyle", LastName: "Haines", Email: "kyle.haines@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleAdultLeader, Unit: "Crew 22", Active: true},
			{ID: "leader2", FirstName: "Sarah", LastName: "Thompson", Email: "sarah.thompson@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleAdultLeader, Unit: "Troop 3125", Active: true},
			{ID: "leader3", FirstName: "Mike", LastName: "Chen", Email: "mike.chen@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleAdultLeader, Unit: "Troop 114", Active: true},
			{ID: "scout1", FirstName: "Liam", LastName: "H.", Email: "liam.h@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleYouth, Unit: "Crew 22", Active: true},
			{ID: "scout2", FirstName: "Alex", LastName: "M.", Email: "alex.m@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleYouth, Unit: "Troop 3125", Active: true},
			{ID: "parent1", FirstName: "Parent", LastName: "of Liam", Email: "parent.liam@vahc.org", PasswordHash: string(defaultHash), Role: types.RoleParent, Unit: "Crew 22", Active: true},
		}

		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		units := []models.Unit{
			{ID: "unit-crew22", Name: "Crew 22"},
			{ID: "unit-troop3125", Name: "Troop 3125"},
			{ID: "unit-troop114", Name: "Troop 114"},
		}

		for i := range units {
			if err := tx.Create(&units[i]).Error; err != nil {
				return err
			}
		}

		allRoles := "admin,adult_leader,youth,parent"
		leaderRoles := "admin,adult_leader"
		unitPostRoles := "admin,adult_leader,youth"

		channels := []models.Channel{
			{ID: "announcements", Name: "Contingent Announcements", Description: "Official updates from leadership", Icon: "📢", Type: types.ChannelTypePublic, AllowedRoles: allRoles, CanPostRoles: leaderRoles, Active: true, PushNotifications: true},
			{ID: "crew22", Name: "Crew 22", Description: "Crew 22 unit communication", Icon: "🏕️", Type: types.ChannelTypeUnit, Unit: "Crew 22", AllowedRoles: allRoles, CanPostRoles: unitPostRoles, Active: true, PushNotifications: true},
			{ID: "troop3125", Name: "Troop 3125", Description: "Troop 3125 unit communication", Icon: "🏕️", Type: types.ChannelTypeUnit, Unit: "Troop 3125", AllowedRoles: allRoles, CanPostRoles: unitPostRoles, Active: true, PushNotifications: true},
			{ID: "troop114", Name: "Troop 114", Description: "Troop 114 unit communication", Icon: "🏕️", Type: types.ChannelTypeUnit, Unit: "Troop 114", AllowedRoles: allRoles, CanPostRoles: unitPostRoles, Active: true, PushNotifications: true},
			{ID: "leadership", Name: "Adult Leadership", Description: "Leadership coordination - adults only", Icon: "👥", Type: types.ChannelTypeLeadership, AllowedRoles: leaderRoles, CanPostRoles: leaderRoles, Active: true, PushNotifications: true},
			{ID: "activities", Name: "Activities & Schedule", Description: "Daily schedules, merit badges, events", Icon: "📅", Type: types.ChannelTypePublic, AllowedRoles: allRoles, CanPostRoles: leaderRoles, Active: true, PushNotifications: true},
			{ID: "parents", Name: "Family Updates", Description: "Updates for families back home", Icon: "👨‍👩‍👧‍👦", Type: types.ChannelTypeParent, AllowedRoles: "admin,adult_leader,parent", CanPostRoles: leaderRoles, Active: true, PushNotifications: true},
		}

		for i := range channels {
			if err := tx.Create(&channels[i]).Error; err != nil {
				return err
			}
		}

		welcome := models.Message{
			ChannelID: "announcements",
			UserID:    "admin1",
			Content:   "Welcome to JamboHub! This is your central place for all contingent communication during the 2026 National Jamboree. Please explore the different channels.",
			Pinned:    true,
		}

		if err := tx.Create(&welcome).Error; err != nil {
			return err
		}

		cards := []models.InfoCard{
			{Title: "Emergency Contact", Content: "Contingent HQ: (555) 010-2026", Icon: "🚨", Color: "#DC2626", SortOrder: 1, Active: true},
			{Title: "Daily Schedule", Content: "Reveille 7:00 — Quiet hours 22:00", Icon: "📅", Color: "#7C3AED", SortOrder: 2, Active: true},
			{Title: "Medical Tent", Content: "Subcamp C, next to the trading post", Icon: "⛑️", Color: "#059669", SortOrder: 3, Active: true},
		}

		for i := range cards {
			if err := tx.Create(&cards[i]).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding complete")
		return nil
	})
}
