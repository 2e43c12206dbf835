package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/core"
)

func main() {
	dsn := os.Getenv("DSN")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal(err)
	}

	models := []interface{}{
		&core.Employe{},
		&core.Utilisateur{},
		&anomalie.Anomalie{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	admin := core.Utilisateur{
		ID:    uuid.NewString(),
		Email: "admin@gestirh.com",
		Nom:   "Admin",
		Role:  "admin",
	}
	if err := db.Where(core.Utilisateur{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	demo := []core.Employe{
		{ID: uuid.NewString(), Nom: "Martin", Prenom: "Claire"},
		{ID: uuid.NewString(), Nom: "Dubois", Prenom: "Paul"},
	}
	for _, emp := range demo {
		if err := db.Where(core.Employe{Nom: emp.Nom, Prenom: emp.Prenom}).FirstOrCreate(&emp).Error; err != nil {
			log.Fatalf("seed employe failed: %v", err)
		}
	}

	log.Println("seed complete")
}
