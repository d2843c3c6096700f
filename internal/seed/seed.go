// Package seed loads the demo dataset. Every record is matched on its natural
// key first, so running it twice leaves the database unchanged.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/auth"
	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/event"
)

type demoUser struct {
	id       uint
	username string
	email    string
	password string
	role     auth.UserRole
}

var demoUsers = []demoUser{
	{112201026, "gurpreet", "gurpreet.singh@example.com", "hash1", auth.RoleAlumni},
	{112201014, "mandeep", "mandeep.kaur@example.com", "hash2", auth.RoleStudent},
}

// Run inserts the dataset in one transaction. Event times are wall-clock
// times in loc.
func Run(ctx context.Context, db *gorm.DB, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cse := directory.Department{Name: "Computer Science"}
		ece := directory.Department{Name: "Electronics"}
		for _, d := range []*directory.Department{&cse, &ece} {
			if err := tx.Where("department_name = ?", d.Name).FirstOrCreate(d).Error; err != nil {
				return fmt.Errorf("seed department %s: %w", d.Name, err)
			}
		}

		ids := map[string]uint{}
		for _, u := range demoUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			email := u.email
			var user auth.User
			attrs := auth.User{ID: u.id, Username: u.username, Email: &email, PasswordHash: string(hash), Role: u.role}
			if err := tx.Where("username = ?", u.username).Attrs(attrs).FirstOrCreate(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
			ids[u.username] = user.ID
		}

		phone, bio, linkedin := "9876543210", "Software Engineer passionate about AI.", "https://linkedin.com/in/gurpreet"
		profile := alumni.Profile{
			UserID:             ids["gurpreet"],
			AlumniName:         "Gurpreet Singh",
			PhNo:               &phone,
			GraduationYear:     2015,
			DepartmentID:       cse.ID,
			Bio:                &bio,
			LinkedinProfileURL: &linkedin,
		}
		if err := tx.Omit("User", "Department").Where("user_id = ?", profile.UserID).FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("seed alumni profile: %w", err)
		}

		studentPhone, studentBio, joined := "9123456780", "Final year student interested in IoT.", 2022
		student := auth.StudentProfile{
			UserID:       ids["mandeep"],
			StudentName:  "Mandeep Kaur",
			DepartmentID: ece.ID,
			PhNo:         &studentPhone,
			JoinedYear:   &joined,
			Bio:          &studentBio,
		}
		if err := tx.Omit("User", "Department").Where("user_id = ?", student.UserID).FirstOrCreate(&student).Error; err != nil {
			return fmt.Errorf("seed student profile: %w", err)
		}

		orgDesc := "Promotes Punjabi heritage"
		org := event.EventOrganizer{Type: event.OrganizerClub, Name: "Punjabi Cultural Club", Description: &orgDesc}
		if err := tx.Where("event_org_name = ?", org.Name).FirstOrCreate(&org).Error; err != nil {
			return fmt.Errorf("seed organizer: %w", err)
		}

		for _, e := range demoEvents(org.ID, loc) {
			if err := tx.Omit("Organizer").Where("event_name = ? AND start_time = ?", e.Name, e.StartTime).FirstOrCreate(&e).Error; err != nil {
				return fmt.Errorf("seed event %s: %w", e.Name, err)
			}
		}

		log.Info().Msg("🌱 Seed data inserted")
		return nil
	})
}

func demoEvents(orgID uint, loc *time.Location) []event.Event {
	at := func(month time.Month, day, hour int) time.Time {
		return time.Date(2024, month, day, hour, 0, 0, 0, loc)
	}
	end1, end2 := at(time.April, 13, 22), at(time.August, 20, 23)
	desc1, desc2 := "Dance, Gidda, and Bhangra performances.", "Live dhol and folk singers."
	return []event.Event{
		{Name: "Baisakhi Celebration", Type: event.TypeCultural, StartTime: at(time.April, 13, 18), EndTime: &end1, Description: &desc1, OrganizerID: orgID},
		{Name: "Punjabi Folk Music Night", Type: event.TypeCultural, StartTime: at(time.August, 20, 19), EndTime: &end2, Description: &desc2, OrganizerID: orgID},
	}
}
