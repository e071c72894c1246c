package main

import (
	"context"
	"time"

	authrepository "venuebook/internal/auth/repository"
	venuerepository "venuebook/internal/venues/repository"
	"venuebook/pkg/config"
	"venuebook/pkg/model"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const JobName = "seed"

// demoPassword is the shared password of the demo accounts. Seeding is for
// local development and demos only.
const demoPassword = "password"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting seed job")

	seedVenues(ctx, cfg)
	seedUsers(ctx, cfg)
	seedBlockedDates(ctx, cfg)

	cfg.Log.Info("Seed job completed")
}

func seedVenues(ctx context.Context, cfg *config.Config) {
	repo := venuerepository.NewMongoVenueRepository(cfg)

	for i := range catalog {
		venue := catalog[i]
		if err := repo.Upsert(ctx, &venue); err != nil {
			cfg.Log.Fatal("Failed to seed venue", "name", venue.Name, "error", err)
		}
		cfg.Log.Info("Seeded venue", "name", venue.Name)
	}
}

func seedUsers(ctx context.Context, cfg *config.Config) {
	repo := authrepository.NewMongoUserRepository(cfg)

	if err := repo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure user indexes", "error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.BcryptCost)
	if err != nil {
		cfg.Log.Fatal("Failed to hash demo password", "error", err)
	}

	users := []model.User{
		{Name: "John Doe", Email: "user@example.com", Role: model.RoleUser, PasswordHash: string(hash)},
		{Name: "Admin User", Email: "admin@example.com", Role: model.RoleAdmin, PasswordHash: string(hash)},
	}

	for i := range users {
		if err := repo.Upsert(ctx, &users[i]); err != nil {
			cfg.Log.Fatal("Failed to seed user", "email", users[i].Email, "error", err)
		}
		cfg.Log.Info("Seeded user", "email", users[i].Email, "role", users[i].Role)
	}
}

func seedBlockedDates(ctx context.Context, cfg *config.Config) {
	repo := venuerepository.NewMongoBlockedDateRepository(cfg)

	// Campus-wide maintenance and event dates. VenueID left empty so the
	// block applies to every venue.
	dates := []string{
		"2025-04-12",
		"2025-04-13",
		"2025-04-18",
		"2025-04-25",
		"2025-05-02",
		"2025-05-10",
	}

	for _, raw := range dates {
		date, err := time.ParseInLocation(model.DateLayout, raw, time.UTC)
		if err != nil {
			cfg.Log.Fatal("Invalid blocked date", "date", raw, "error", err)
		}
		blocked := model.BlockedDate{Date: date, Reason: "campus closure"}
		if err := repo.Upsert(ctx, &blocked); err != nil {
			cfg.Log.Fatal("Failed to seed blocked date", "date", raw, "error", err)
		}
		cfg.Log.Info("Seeded blocked date", "date", raw)
	}
}

var catalog = []model.Venue{
	{
		Name:     "Main Auditorium",
		Location: "Central Campus",
		Capacity: 500,
		Category: "Auditorium",
		Features: []string{"Stage", "Sound System", "Projector", "Air Conditioning", "Wheelchair Access"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1517457373958-b7bdd4587205?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1517457440474-8dde1fab3c41?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1526724655426-c6decf8233ff?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "Our main auditorium is perfect for large events, lectures, and performances. It features state-of-the-art sound and lighting systems with comfortable seating for up to 500 people.",
		Rules: []string{
			"No food or drinks inside",
			"No modification of stage setup without permission",
			"Booking includes basic technical support",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon, model.SlotEvening},
		Active: true,
	},
	{
		Name:     "Conference Room A",
		Location: "Business Building",
		Capacity: 50,
		Category: "Conference Room",
		Features: []string{"Whiteboard", "Video Conferencing", "Coffee Machine", "Projector", "Air Conditioning"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1596079890744-c1a0462d0975?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1497215842964-222b430dc094?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "A professional conference room equipped with modern facilities for presentations, meetings, and workshops. Features a large table, comfortable chairs, and high-tech conferencing equipment.",
		Rules: []string{
			"Room must be left clean",
			"Technical equipment must be handled with care",
			"Maximum 4-hour booking slots",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon},
		Active: true,
	},
	{
		Name:     "Sports Hall",
		Location: "Sports Complex",
		Capacity: 200,
		Category: "Sports Venue",
		Features: []string{"Basketball Court", "Locker Rooms", "Scoreboard", "Sound System", "Spectator Seating"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1517466787929-bc90951d0974?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1593079831268-3381b0db4a77?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1567603452239-496d5e8c375e?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "A multipurpose sports hall suitable for basketball, volleyball, badminton, and various indoor sports events or fitness activities. Includes spectator seating and full changing facilities.",
		Rules: []string{
			"Appropriate footwear must be worn",
			"Equipment damage must be reported immediately",
			"No food on the court",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon, model.SlotEvening},
		Active: true,
	},
	{
		Name:     "Study Room 101",
		Location: "Library",
		Capacity: 15,
		Category: "Study Space",
		Features: []string{"Quiet Space", "Power Outlets", "Wi-Fi", "Whiteboards", "Natural Lighting"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1541829070764-84a7d30dd3f3?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1558021212-51b6ecfa0db9?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1529007196863-d07650a3f0b9?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "A quiet and comfortable study room ideal for group work, discussions, or collaborative projects. Features multiple power outlets and a peaceful environment for focused work.",
		Rules: []string{
			"Quiet voices only",
			"No food or drinks except water",
			"Maximum booking time of 3 hours",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon, model.SlotEvening},
		Active: true,
	},
	{
		Name:     "Computer Lab",
		Location: "Technology Building",
		Capacity: 40,
		Category: "Lab",
		Features: []string{"High-end Computers", "Software Development Tools", "Dual Monitors", "Fast Internet", "Ergonomic Chairs"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1662025118270-544f3b9fe645?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1606857521015-7f9fcf423740?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1566125882500-87e10f726cdc?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "A state-of-the-art computer lab with 40 high-performance workstations loaded with professional software. Ideal for programming classes, digital design work, or technical training sessions.",
		Rules: []string{
			"No food or drinks around computers",
			"No software installation without permission",
			"Supervised access only",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon},
		Active: true,
	},
	{
		Name:     "Outdoor Amphitheater",
		Location: "Arts Quad",
		Capacity: 300,
		Category: "Outdoor Space",
		Features: []string{"Open Air", "Stage", "Natural Acoustics", "Tiered Seating", "Lighting System"},
		ImageURLs: []string{
			"https://images.unsplash.com/photo-1514320291840-2e0a9bf2a9ae?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1506157786151-b8491531f063?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			"https://images.unsplash.com/photo-1578944184805-26de4e76c735?w=800&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		Description: "A beautiful outdoor performance space with natural acoustics and a Greek-inspired design. Perfect for performances, graduation ceremonies, or outdoor lectures on pleasant days.",
		Rules: []string{
			"Weather-dependent venue",
			"Sound restrictions after 8pm",
			"No staking anything into the ground",
		},
		Slots:  []model.TimeSlot{model.SlotMorning, model.SlotAfternoon},
		Active: true,
	},
}
