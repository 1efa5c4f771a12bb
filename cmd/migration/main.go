package main

import (
	"flag"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/jwtmanager"
	"medibook-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const demoPassword = "medibook123"

func main() {
	seed := flag.Bool("seed", false, "insert demo clinics, doctors and patients")
	printTokens := flag.Bool("tokens", false, "print access tokens for the demo accounts")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig, driverConfig.Logger.Level)

	db := database.NewDatabase(driverConfig)
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	start := time.Now()
	if err := models.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate schema")
	}
	log.WithField("duration", time.Since(start)).Info("Schema migrated")

	if !*seed {
		return
	}

	accounts, err := seedDemoData(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed demo data")
	}
	log.WithField("accounts", len(accounts)).Info("Demo data seeded")

	if !*printTokens {
		return
	}
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig)
	if err != nil {
		log.WithError(err).Fatal("Failed to build the token signer")
	}
	for email, user := range accounts {
		token, err := jwtManager.CreateToken(user, 0)
		if err != nil {
			log.WithError(err).WithField("email", email).Error("Failed to sign token")
			continue
		}
		log.WithFields(logrus.Fields{"email": email, "role": user.Role}).Info(token)
	}
}

type demoDoctor struct {
	email     string
	name      string
	specialty string
	fee       int64
	hours     models.WorkingHours
}

// seedDemoData is idempotent: rows are looked up by their natural key first.
func seedDemoData(db *gorm.DB, log *logrus.Logger) (map[string]*models.AuthUser, error) {
	accounts := make(map[string]*models.AuthUser)

	passwordHash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		clinic := models.Clinic{
			Name:      "MediBook District 1",
			Address:   "12 Le Loi, District 1, Ho Chi Minh City",
			Phone:     "+84 28 3822 0000",
			Latitude:  10.7769,
			Longitude: 106.7009,
			IsActive:  true,
		}
		if err := tx.Where(models.Clinic{Name: clinic.Name}).FirstOrCreate(&clinic).Error; err != nil {
			return err
		}

		weekdays := models.WorkingHours{}
		for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
			weekdays[day] = []models.TimeRange{{Start: "08:00", End: "12:00"}, {Start: "13:30", End: "17:00"}}
		}

		doctors := []demoDoctor{
			{email: "dr.nguyen@medibook.test", name: "Dr. Nguyen Van An", specialty: "Cardiology", fee: 300000, hours: weekdays},
			{email: "dr.tran@medibook.test", name: "Dr. Tran Thi Binh", specialty: "Dermatology", fee: 250000, hours: models.WorkingHours{
				"saturday": {{Start: "08:00", End: "11:30"}},
				"sunday":   {{Start: "08:00", End: "11:30"}},
			}},
		}

		for _, d := range doctors {
			specialty := models.Specialty{Name: d.specialty}
			if err := tx.Where(models.Specialty{Name: d.specialty}).FirstOrCreate(&specialty).Error; err != nil {
				return err
			}

			user := models.User{Email: d.email, PasswordHash: passwordHash, FullName: d.name, Role: models.UserRoleDoctor}
			if err := tx.Where(models.User{Email: d.email}).FirstOrCreate(&user).Error; err != nil {
				return err
			}

			doctor := models.Doctor{
				UserID:              user.ID,
				ClinicID:            clinic.ID,
				SpecialtyID:         specialty.ID,
				FullName:            d.name,
				ConsultationFee:     d.fee,
				IsAvailable:         true,
				SlotDurationMinutes: 30,
			}
			if err := doctor.SetSchedule(d.hours); err != nil {
				return err
			}
			if err := tx.Where(models.Doctor{UserID: user.ID}).FirstOrCreate(&doctor).Error; err != nil {
				return err
			}
			accounts[d.email] = &models.AuthUser{UserID: user.ID, Role: models.UserRoleDoctor, ProfileID: doctor.ID}
			log.WithFields(logrus.Fields{"email": d.email, "doctor_id": doctor.ID}).Debug("Seeded doctor")
		}

		for _, p := range []struct{ email, name string }{
			{"patient.le@medibook.test", "Le Minh Chau"},
			{"patient.pham@medibook.test", "Pham Quoc Dung"},
		} {
			user := models.User{Email: p.email, PasswordHash: passwordHash, FullName: p.name, Role: models.UserRolePatient}
			if err := tx.Where(models.User{Email: p.email}).FirstOrCreate(&user).Error; err != nil {
				return err
			}
			patient := models.Patient{UserID: user.ID}
			if err := tx.Where(models.Patient{UserID: user.ID}).FirstOrCreate(&patient).Error; err != nil {
				return err
			}
			accounts[p.email] = &models.AuthUser{UserID: user.ID, Role: models.UserRolePatient, ProfileID: patient.ID}
		}

		admin := models.User{Email: "admin@medibook.test", PasswordHash: passwordHash, FullName: "MediBook Admin", Role: models.UserRoleAdmin}
		if err := tx.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
			return err
		}
		accounts[admin.Email] = &models.AuthUser{UserID: admin.ID, Role: models.UserRoleAdmin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
