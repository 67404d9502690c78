package seed

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deoxyribo/limeblog/cmd/cli/root"
	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/imagegen"
	"github.com/deoxyribo/limeblog/internal/models"
	"github.com/deoxyribo/limeblog/internal/slug"
	"github.com/deoxyribo/limeblog/internal/store"
)

// ==========================
// CLI Command Init
// ==========================

func init() {
	var username, displayName, password string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Install demo content",
		Long: `Write an admin user, sample posts with staggered dates, and a generated
gradient hero image per post. Overwrites posts.json and users.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, username, displayName, password)
		},
	}

	seedCmd.Flags().StringVar(&username, "username", "deoxyribo", "admin username")
	seedCmd.Flags().StringVar(&displayName, "display-name", "DrFlask", "admin display name")
	seedCmd.Flags().StringVar(&password, "password", "", "admin password (random when empty)")

	root.GetRoot().AddCommand(seedCmd)
}

// ==========================
// Seed
// ==========================

func runSeed(cmd *cobra.Command, username, displayName, password string) error {
	fs := afero.NewOsFs()
	for _, dir := range []string{root.DataDir, root.UploadsDir} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	generated := false
	if password == "" {
		var b [9]byte
		if _, err := rand.Read(b[:]); err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		password = hex.EncodeToString(b[:])
		generated = true
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return err
	}
	users := store.NewUserStore(fs, root.DataDir)
	if err := users.Save([]models.User{{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
	}}); err != nil {
		return err
	}
	if generated {
		cmd.Printf("Created admin user %s (password: %s)\n", username, password)
	} else {
		cmd.Printf("Created admin user %s\n", username)
	}

	now := time.Now().UTC()
	existing := make(map[string]bool, len(samples))
	posts := make([]models.Post, 0, len(samples))

	for i, s := range samples {
		postSlug := slug.Allocate(s.Title, existing)
		existing[postSlug] = true

		imageName := postSlug + ".jpg"
		if err := writeHeroImage(fs, filepath.Join(root.UploadsDir, imageName), s, i); err != nil {
			return err
		}

		created := now.AddDate(0, 0, -(len(samples) - i)).Format(time.RFC3339)
		posts = append(posts, models.Post{
			Title:    s.Title,
			Slug:     postSlug,
			Tags:     s.Tags,
			Teaser:   s.Teaser,
			Body:     s.Body,
			Image:    imageName,
			Author:   displayName,
			Created:  created,
			Updated:  created,
			ReadTime: store.ReadTime(s.Body),
		})
		cmd.Printf("  Created post: %s\n", s.Title)
	}

	postStore := store.NewPostStore(fs, root.DataDir, root.UploadsDir)
	if err := postStore.Replace(posts); err != nil {
		return err
	}

	cmd.Printf("\nGenerated %d posts with hero images.\n", len(posts))
	cmd.Printf("Data saved to %s, images to %s\n", root.DataDir, root.UploadsDir)
	return nil
}

func writeHeroImage(fs afero.Fs, path string, s sample, paletteIdx int) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := imagegen.Gradient(f, s.Title, s.Tags[0], paletteIdx); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
