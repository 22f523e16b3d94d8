// Command createadmin seeds the first admin user. It prompts for a username
// and password on stdin and inserts the credential with the admin role.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nkraev/pos-backend/internal/config"
	"github.com/nkraev/pos-backend/internal/db"
	"github.com/nkraev/pos-backend/internal/hash"
	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/service"
)

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	in := bufio.NewReader(os.Stdin)

	username, err := prompt(in, "Enter admin username: ")
	if err != nil {
		log.Fatalf("read username: %v", err)
	}
	if username == "" {
		log.Fatal("username must not be empty")
	}

	password, err := prompt(in, "Enter admin password: ")
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	confirm, err := prompt(in, "Confirm admin password: ")
	if err != nil {
		log.Fatalf("read password confirmation: %v", err)
	}
	if password == "" || password != confirm {
		log.Fatal("passwords empty or do not match, aborting")
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	r := repo.New(gormDB)
	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         service.RoleAdmin,
	}
	if err := r.CreateUser(ctx, &user); err != nil {
		log.Fatalf("create admin user: %v", err)
	}

	fmt.Printf("admin user %q created\n", username)
}
