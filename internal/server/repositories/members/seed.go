package members

import (
	"context"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// DemoMembers returns the demo dataset used by the in-memory backend.
// Every account gets the same password hash (the demo password is decided
// by the caller).
func DemoMembers(passwordHash string) []*models.Member {
	now := time.Now()
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	return []*models.Member{
		{
			User: models.User{
				ID: "1", Email: "admin@organisasi.com", Name: "Admin User",
				Role: models.RoleAdmin, CreatedAt: date("2024-01-15"),
				IsActive: true, ProfileComplete: true,
			},
			PasswordHash:      passwordHash,
			Phone:             "+62 812-1111-1111",
			Address:           "Jakarta Selatan",
			JoinDate:          date("2024-01-15"),
			LastActive:        now,
			DocumentsUploaded: true,
			Verified:          true,
		},
		{
			User: models.User{
				ID: "2", Email: "master@organisasi.com", Name: "Master Admin",
				Role: models.RoleMaster, CreatedAt: date("2024-01-01"),
				IsActive: true, ProfileComplete: true,
			},
			PasswordHash:      passwordHash,
			Phone:             "+62 812-0000-0000",
			Address:           "Jakarta Pusat",
			JoinDate:          date("2024-01-01"),
			LastActive:        now,
			DocumentsUploaded: true,
			Verified:          true,
		},
		{
			User: models.User{
				ID: "3", Email: "member@organisasi.com", Name: "Member User",
				Role: models.RoleMember, CreatedAt: date("2024-02-01"),
				IsActive: true,
			},
			PasswordHash: passwordHash,
			Phone:        "+62 812-2222-2222",
			Address:      "Jakarta Timur",
			JoinDate:     date("2024-02-01"),
			LastActive:   now.Add(-2 * time.Hour),
			Notes:        "Perlu follow up untuk melengkapi biodata",
		},
		{
			User: models.User{
				ID: "4", Email: "john.doe@email.com", Name: "John Doe",
				Role: models.RoleMember, CreatedAt: date("2024-02-15"),
				IsActive: true, ProfileComplete: true,
			},
			PasswordHash:      passwordHash,
			Phone:             "+62 812-3333-3333",
			Address:           "Jakarta Barat",
			JoinDate:          date("2024-02-15"),
			LastActive:        now.Add(-24 * time.Hour),
			DocumentsUploaded: true,
			Notes:             "Menunggu verifikasi dokumen",
		},
		{
			User: models.User{
				ID: "5", Email: "jane.smith@email.com", Name: "Jane Smith",
				Role: models.RoleMember, CreatedAt: date("2024-03-01"),
				ProfileComplete: true,
			},
			PasswordHash: passwordHash,
			Phone:        "+62 812-4444-4444",
			Address:      "Jakarta Utara",
			JoinDate:     date("2024-03-01"),
			LastActive:   now.Add(-7 * 24 * time.Hour),
			Notes:        "Tidak aktif, perlu follow up",
		},
	}
}

// SeedDemo loads the demo dataset into repo. Intended for the in-memory
// backend only.
func SeedDemo(ctx context.Context, repo Repository, passwordHash string) error {
	for _, m := range DemoMembers(passwordHash) {
		if _, err := repo.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
