package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"mockchat/config"
	"mockchat/models"
)

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.Name,
	)
}

// Connect opens the configured database and migrates the schema. The handle
// is returned to the caller; services receive it explicitly instead of
// reading a package global.
func Connect(conf *config.ConfigSchema) (*gorm.DB, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is not loaded")
	}

	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case "sqlite":
		path := conf.Database.Path
		if path == "" {
			path = "mockchat.db"
		}
		dialector = sqlite.Open(path)
	case "", "postgres":
		if conf.Database.Master.Host == "" {
			return nil, fmt.Errorf("master database configuration is missing")
		}
		dialector = postgres.Open(dsnFromConfig(conf.Database.Master))
	default:
		return nil, fmt.Errorf("unknown db driver %q", conf.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   false,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Read replicas only make sense for postgres.
	if conf.Database.Driver != "sqlite" && len(conf.Database.Replicas) > 0 {
		replicaDialectors := make([]gorm.Dialector, 0, len(conf.Database.Replicas))
		for _, r := range conf.Database.Replicas {
			replicaDialectors = append(replicaDialectors, postgres.Open(dsnFromConfig(r)))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicaDialectors,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, err
		}
	}

	if err = db.AutoMigrate(&models.Account{}, &models.Message{}); err != nil {
		return nil, err
	}

	return db, nil
}
