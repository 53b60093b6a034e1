package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sahilchouksey/academic-portfolio/config"
	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
)

func main() {
	contentPath := flag.String("content", "", "YAML file with portfolio content to import")
	flag.Parse()

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	env, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := utils.NewLogger(env.GO_ENV, env.LOG_LEVEL)

	store, err := database.StartGORM(env, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Academic Portfolio - Database Seeding")
	fmt.Println(separator)

	seeder := database.NewSeeder(store.GetDB(), log, auth.DefaultHasher)
	if _, err := seeder.SeedAll(ctx, env.ADMIN_EMAIL, env.ADMIN_PASSWORD); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}

	if *contentPath != "" {
		f, err := os.Open(*contentPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open content file")
		}
		defer f.Close()

		importer := services.NewContentImporter(store.GetDB(), validation.NewValidator(), log)
		report, err := importer.Import(ctx, f)
		if err != nil {
			log.WithError(err).Fatal("content import failed")
		}

		names := make([]string, 0, len(report))
		for name := range report {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			count := report[name]
			fmt.Printf("  %-20s created=%d skipped=%d invalid=%d\n", name, count.Created, count.Skipped, count.Invalid)
		}
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed. The admin user is created from ADMIN_EMAIL and ADMIN_PASSWORD; without a password it is skipped.")
	fmt.Println(separator)
}
