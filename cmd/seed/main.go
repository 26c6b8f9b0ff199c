package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"mobypark/internal/lots"
	"mobypark/internal/passes"
	"mobypark/internal/sessions"
	"mobypark/internal/shared/config"
	"mobypark/internal/shared/database"
	"mobypark/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Mobypark Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"invoices",
		"parking_sessions",
		"hotel_passes",
		"parking_lots",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	lotIDs, err := s.SeedLots()
	if err != nil {
		return fmt.Errorf("failed to seed lots: %w", err)
	}

	if err := s.SeedHotelPasses(lotIDs); err != nil {
		return fmt.Errorf("failed to seed hotel passes: %w", err)
	}

	if err := s.SeedSessions(lotIDs); err != nil {
		return fmt.Errorf("failed to seed sessions: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin, 1 operator and 1 regular user
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@mobypark.com", users.RoleAdmin},
		{"Olivia", "Operator", "operator@mobypark.com", users.RoleOperator},
		{"Daan", "Driver", "driver@mobypark.com", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedLots creates parking lots with different tariff setups
func (s *Seeder) SeedLots() (map[string]int64, error) {
	fmt.Println("  🅿️ Seeding parking lots...")

	lotIDs := make(map[string]int64)
	dayTariffCentrum := decimal.NewFromInt(20)
	dayTariffAirport := decimal.NewFromInt(35)

	lotsData := []struct {
		key       string
		name      string
		location  string
		address   string
		capacity  int
		tariff    decimal.Decimal
		dayTariff *decimal.Decimal
	}{
		{"centrum", "Centrum Garage", "Amsterdam", "Damrak 1, 1012 LG Amsterdam", 120, decimal.RequireFromString("5.00"), &dayTariffCentrum},
		{"airport", "Airport P3 Long Stay", "Schiphol", "Havenmeesterweg 1, 1118 CB Schiphol", 800, decimal.RequireFromString("4.50"), &dayTariffAirport},
		{"station", "Station Bike & Ride", "Utrecht", "Stationsplein 12, 3511 ED Utrecht", 40, decimal.Zero, nil},
	}

	for _, lotData := range lotsData {
		lot := lots.ParkingLot{
			Name:      lotData.name,
			Location:  lotData.location,
			Address:   lotData.address,
			Capacity:  lotData.capacity,
			Tariff:    lotData.tariff,
			DayTariff: lotData.dayTariff,
		}

		if err := s.db.PostgreSQL.Create(&lot).Error; err != nil {
			return nil, fmt.Errorf("failed to create lot %s: %w", lot.Name, err)
		}

		lotIDs[lotData.key] = lot.ID
		fmt.Printf("    ✅ Created lot: %s (capacity %d)\n", lot.Name, lot.Capacity)
	}

	return lotIDs, nil
}

// SeedHotelPasses creates hotel passes covering the next week
func (s *Seeder) SeedHotelPasses(lotIDs map[string]int64) error {
	fmt.Println("  🏨 Seeding hotel passes...")

	now := time.Now()

	passesData := []struct {
		plate     string
		lotKey    string
		hotelName string
		nights    int
		graceMin  int
	}{
		{"AB-12-CD", "centrum", "Hotel De Roode Leeuw", 3, 60},
		{"XY-99-ZZ", "airport", "Schiphol Sheraton", 1, 30},
	}

	for _, passData := range passesData {
		pass := passes.HotelPass{
			LicensePlate: passData.plate,
			ParkingLotID: lotIDs[passData.lotKey],
			HotelName:    passData.hotelName,
			ValidFrom:    now.Truncate(24 * time.Hour),
			ValidUntil:   now.Truncate(24 * time.Hour).AddDate(0, 0, passData.nights),
			ExtraMinutes: passData.graceMin,
		}

		if err := s.db.PostgreSQL.Create(&pass).Error; err != nil {
			return fmt.Errorf("failed to create pass for %s: %w", passData.plate, err)
		}

		fmt.Printf("    ✅ Created hotel pass: %s at %s\n", pass.LicensePlate, pass.HotelName)
	}

	return nil
}

// SeedSessions creates one active and one completed parking session
func (s *Seeder) SeedSessions(lotIDs map[string]int64) error {
	fmt.Println("  🚗 Seeding parking sessions...")

	now := time.Now()

	// Active session: vehicle drove in two hours ago and is still inside.
	active := sessions.ParkingSession{
		ParkingLotID:  lotIDs["centrum"],
		LicensePlate:  "GH-56-IJ",
		Started:       now.Add(-2 * time.Hour),
		PaymentStatus: sessions.PaymentStatusPreAuthorized,
	}
	if err := s.db.PostgreSQL.Create(&active).Error; err != nil {
		return fmt.Errorf("failed to create active session: %w", err)
	}
	fmt.Printf("    ✅ Created active session: %s\n", active.LicensePlate)

	// Keep the capacity counter in step with the open session.
	if err := s.db.PostgreSQL.Exec(
		"UPDATE parking_lots SET reserved = reserved + 1 WHERE id = ?", active.ParkingLotID,
	).Error; err != nil {
		return fmt.Errorf("failed to reserve spot for active session: %w", err)
	}

	// Completed session: three billable hours at the centrum tariff, paid at exit.
	stopped := now.Add(-24 * time.Hour)
	cost := decimal.RequireFromString("15.00")
	completed := sessions.ParkingSession{
		ParkingLotID:  lotIDs["centrum"],
		LicensePlate:  "KL-78-MN",
		Started:       stopped.Add(-3 * time.Hour),
		Stopped:       &stopped,
		Cost:          &cost,
		PaymentStatus: sessions.PaymentStatusPaid,
	}
	if err := s.db.PostgreSQL.Create(&completed).Error; err != nil {
		return fmt.Errorf("failed to create completed session: %w", err)
	}
	fmt.Printf("    ✅ Created completed session: %s (cost %s)\n", completed.LicensePlate, cost.StringFixed(2))

	return nil
}
