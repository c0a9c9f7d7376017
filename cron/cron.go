package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/pawprintlabs/petcare-portal/models"
	"github.com/pawprintlabs/petcare-portal/utils"
)

// StartReminders starts the scheduler that emails pet owners about
// confirmed appointments starting in the next hour.
func StartReminders(db *gorm.DB) {
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() { sendAppointmentReminders(db) })
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

func sendAppointmentReminders(db *gorm.DB) {
	var appointments []models.Appointment
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.Preload("Pet").Preload("Pet.Owner").Preload("Vet").
		Where("status = ? AND appointment_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Pet.Owner.Email)
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment for %s", appointment.Pet.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Pet:</strong> %s</li>
			<li><strong>Vet:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Pet Care Team</p>
	`, appointment.Pet.Owner.Name, appointment.Pet.Name, appointment.Vet.Name,
		appointment.AppointmentTime.Format("2006-01-02 15:04:05"),
		appointment.Status)

	return utils.SendEmail(appointment.Pet.Owner.Email, subject, body)
}
