// Command dbsetup provisions the users database schema on the backend
// project. It is idempotent: resources that already exist are skipped.
//
// It needs a server API key (EVENTHUB_API_KEY); the application itself never
// carries one.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/msavelyeva/eventhub/internal/backend"
	"github.com/msavelyeva/eventhub/internal/config"
	"github.com/msavelyeva/eventhub/internal/models"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.APIKey == "" {
		log.Fatal("EVENTHUB_API_KEY is required")
	}

	admin, err := backend.NewAdminClient(cfg.Endpoint, cfg.ProjectID, cfg.APIKey, cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	if err := setup(ctx, admin, cfg); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Fprintln(os.Stdout, "Database setup complete.")
}

func setup(ctx context.Context, admin *backend.AdminClient, cfg *config.Config) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"database", func(ctx context.Context) error {
			return admin.CreateDatabase(ctx, cfg.DatabaseID, "UserDatabase")
		}},
		{"users collection", func(ctx context.Context) error {
			return admin.CreateCollection(ctx, cfg.DatabaseID, cfg.UsersCollection, "Users")
		}},
		{"name attribute", stringAttr(admin, cfg, "name", 100, true, false)},
		{"email attribute", stringAttr(admin, cfg, "email", 320, true, false)},
		{"emailVerification attribute", boolAttr(admin, cfg, "emailVerification")},
		{"isActive attribute", boolAttr(admin, cfg, "isActive")},
		{"role attribute", func(ctx context.Context) error {
			roles := []string{
				string(models.RoleUser),
				string(models.RoleAdmin),
				string(models.RoleModerator),
				string(models.RoleVIP),
			}
			return admin.CreateEnumAttribute(ctx, cfg.DatabaseID, cfg.UsersCollection, "role", roles, false)
		}},
		{"interests attribute", stringAttr(admin, cfg, "interests", 50, false, true)},
		{"loginCount attribute", func(ctx context.Context) error {
			return admin.CreateIntegerAttribute(ctx, cfg.DatabaseID, cfg.UsersCollection, "loginCount", false)
		}},
		{"lastLoginAt attribute", datetimeAttr(admin, cfg, "lastLoginAt")},
		{"createdAt attribute", datetimeAttr(admin, cfg, "createdAt")},
		{"updatedAt attribute", datetimeAttr(admin, cfg, "updatedAt")},
		{"bio attribute", stringAttr(admin, cfg, "bio", 1000, false, false)},
		{"phoneNumber attribute", stringAttr(admin, cfg, "phoneNumber", 32, false, false)},
		{"dateOfBirth attribute", stringAttr(admin, cfg, "dateOfBirth", 10, false, false)},
		{"gender attribute", stringAttr(admin, cfg, "gender", 20, false, false)},
	}

	for _, step := range steps {
		switch err := step.run(ctx); {
		case err == nil:
			fmt.Printf("created %s\n", step.name)
		case errors.Is(err, backend.ErrConflict):
			fmt.Printf("%s already exists, skipping\n", step.name)
		default:
			return fmt.Errorf("creating %s: %w", step.name, err)
		}
	}
	return nil
}

func stringAttr(admin *backend.AdminClient, cfg *config.Config, key string, size int, required, array bool) func(context.Context) error {
	return func(ctx context.Context) error {
		return admin.CreateStringAttribute(ctx, cfg.DatabaseID, cfg.UsersCollection, key, size, required, array)
	}
}

func boolAttr(admin *backend.AdminClient, cfg *config.Config, key string) func(context.Context) error {
	return func(ctx context.Context) error {
		return admin.CreateBooleanAttribute(ctx, cfg.DatabaseID, cfg.UsersCollection, key, false)
	}
}

func datetimeAttr(admin *backend.AdminClient, cfg *config.Config, key string) func(context.Context) error {
	return func(ctx context.Context) error {
		return admin.CreateDatetimeAttribute(ctx, cfg.DatabaseID, cfg.UsersCollection, key, false)
	}
}
