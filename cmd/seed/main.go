package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-validation/config"
	"github.com/oksasatya/go-user-validation/internal/container"
	"github.com/oksasatya/go-user-validation/internal/domain/entity"
	"github.com/oksasatya/go-user-validation/internal/domain/entity/entitytest"
	"github.com/oksasatya/go-user-validation/pkg/helpers"
)

type seededUser struct {
	User     *entity.User `json:"user"`
	Password string       `json:"password"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	container.Init(cfg)
	svc := container.GetUserService()
	logger := container.GetLogger()

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < cfg.SeedCount; i++ {
		props := entitytest.UserDataBuilder(entity.UserProps{})
		u, err := svc.Register(ctx, props)
		if err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		// the plaintext is printed so seeded accounts can be used for manual testing
		if err := enc.Encode(seededUser{User: u, Password: props.Password}); err != nil {
			log.Fatalf("failed to write user: %v", err)
		}
	}
	helpers.LogInfo(logger, "seeded users", logrus.Fields{"count": cfg.SeedCount, "hashed": svc.HashesPasswords()})
}
