// Command seed provisions demo accounts, jobs and applications through
// the regular services, for local development.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mhoudali/interim_app/internal/config"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/tokens"
)

func main() {
	clear := flag.Bool("clear", false, "purge all collections before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if *clear {
		for _, m := range []interface{}{
			&models.Application{}, &models.Job{}, &models.User{}, &models.Company{},
		} {
			if err := db.Where("1 = 1").Delete(m).Error; err != nil {
				log.Fatalf("clear error: %v", err)
			}
		}
		log.Println("collections purged")
	}

	rp := repo.New(db)
	tokenSvc := tokens.NewService([]byte(cfg.JWT_SECRET))
	authSvc := &service.AuthService{Repo: rp, Tokens: tokenSvc}
	jobSvc := &service.JobService{Repo: rp}
	appSvc := &service.ApplicationService{Repo: rp}

	ctx := context.Background()

	company, err := authSvc.RegisterCompany(ctx, service.RegisterCompanyInput{
		Email:       "contact@techcorp.fr",
		Password:    "motdepasse123",
		Name:        "TechCorp SARL",
		Description: "Entreprise spécialisée dans le développement web",
		Sector:      "Informatique",
		Address:     "123 Rue de la Paix, 75001 Paris",
	})
	if err != nil {
		log.Fatalf("seed company: %v", err)
	}

	user, err := authSvc.RegisterUser(ctx, service.RegisterUserInput{
		Email:      "jean.dupont@example.com",
		Password:   "motdepasse123",
		LastName:   "Dupont",
		FirstName:  "Jean",
		Skills:     []string{"Python", "Go", "SQL"},
		Experience: "2 ans d'expérience en développement web",
	})
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	salary := 42000.0
	jobs := []service.CreateJobInput{
		{
			Title:          "Développeur Python",
			Description:    "Développement d'applications web en Python",
			Salary:         &salary,
			ContractType:   "CDI",
			Location:       "Paris",
			RequiredSkills: []string{"Python", "Flask"},
		},
		{
			Title:          "Développeur Go",
			Description:    "Services backend en Go",
			ContractType:   "CDD",
			Location:       "Lyon",
			RequiredSkills: []string{"Go", "PostgreSQL"},
		},
	}

	var firstJob string
	for _, in := range jobs {
		job, err := jobSvc.Create(ctx, company.PrincipalID, in)
		if err != nil {
			log.Fatalf("seed job: %v", err)
		}
		if firstJob == "" {
			firstJob = job.ID
		}
		log.Printf("job created: %s (%s)", job.Title, job.ID)
	}

	if _, err := appSvc.Create(ctx, user.PrincipalID, firstJob, "Je suis très intéressé par ce poste."); err != nil {
		log.Fatalf("seed application: %v", err)
	}

	log.Println("seeding complete")
}
