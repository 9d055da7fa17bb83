// Command createadmin provisions an administrator account interactively.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lshigami/Quillback/config"
	"github.com/lshigami/Quillback/database"
	"github.com/lshigami/Quillback/internal/logger"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Questionnaire{}, &model.Question{}, &model.Response{}, &model.Answer{}); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	users := repository.NewUserRepository(db)
	reader := bufio.NewReader(os.Stdin)

	username := prompt(reader, "Admin username: ")
	if username == "" {
		log.Fatal().Msg("Username must not be empty")
	}
	if _, err := users.FindByUsername(username); err == nil {
		log.Fatal().Str("username", username).Msg("User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("Username lookup failed")
	}

	email := prompt(reader, "Admin email: ")
	if email == "" {
		log.Fatal().Msg("Email must not be empty")
	}
	password := prompt(reader, "Admin password: ")
	if len(password) < 6 {
		log.Fatal().Msg("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Password hashing failed")
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin user")
	}

	fmt.Printf("Admin user %q created.\n", username)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
