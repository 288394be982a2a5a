// Command seed loads a small demo dataset: one user per role plus a few
// posts in each status. Intended for local development, not production.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/partnerdesk/internal/config"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	"github.com/dropDatabas3/partnerdesk/internal/security/password"
	"github.com/dropDatabas3/partnerdesk/internal/store"
)

func strEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

type seedUser struct {
	email string
	name  string
	role  repository.Role
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(strEnv("CONFIG_PATH", ""))
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	plain := strEnv("SEED_PASSWORD", "changeme123")
	hash, err := password.Hash(password.Default, plain)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	users := []seedUser{
		{"owner@partnerdesk.local", "Olive Owner", repository.RoleOwner},
		{"admin@partnerdesk.local", "Ada Admin", repository.RoleAdmin},
		{"staff@partnerdesk.local", "Sam Staff", repository.RoleStaff},
		{"member@partnerdesk.local", "Mel Member", repository.RoleMember},
	}

	ids := map[repository.Role]string{}
	for _, su := range users {
		u, err := st.Users().Create(ctx, repository.CreateUserInput{
			Email:        su.email,
			PasswordHash: hash,
			Name:         su.name,
			Role:         su.role,
			Active:       true,
		})
		if err != nil {
			if repository.IsDuplicate(err) {
				existing, gerr := st.Users().GetByEmail(ctx, su.email)
				if gerr != nil {
					log.Fatalf("lookup %s: %v", su.email, gerr)
				}
				ids[su.role] = existing.ID
				log.Printf("user %s already present", su.email)
				continue
			}
			log.Fatalf("create %s: %v", su.email, err)
		}
		ids[su.role] = u.ID
		log.Printf("created %s (%s)", u.Email, u.Role)
	}

	staffID := ids[repository.RoleStaff]
	adminID := ids[repository.RoleAdmin]
	posts := []repository.CreatePostInput{
		{Title: "Welcome to the partner program", Content: "Start here.", Status: repository.PostPublished, AuthorID: adminID, CreatedBy: adminID},
		{Title: "Commission schedule Q3", Content: "Updated rates.", Status: repository.PostPublished, AuthorID: staffID, CreatedBy: staffID},
		{Title: "Draft: onboarding checklist", Content: "WIP.", Status: repository.PostDraft, AuthorID: staffID, CreatedBy: staffID},
		{Title: "Old promo terms", Content: "Superseded.", Status: repository.PostArchived, AuthorID: adminID, CreatedBy: adminID},
	}
	for _, in := range posts {
		p, err := st.Posts().Create(ctx, in)
		if err != nil {
			log.Fatalf("create post %q: %v", in.Title, err)
		}
		log.Printf("created post %q (%s)", p.Title, p.Status)
	}

	log.Printf("seed complete: %d users, %d posts, password %q", len(users), len(posts), plain)
}
