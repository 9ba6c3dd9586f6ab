package cli

import (
	"context"
	"fmt"
	"log"
)

// List prints the member directory. Optional query and status arguments
// narrow the listing the same way the admin page does.
func (a *App) List(ctx context.Context, query, status string) error {
	list, err := a.api.Members(ctx, query, status)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, m := range list {
		state := "active"
		if !m.IsActive {
			state = "inactive"
		}
		verified := ""
		if m.Verified {
			verified = " verified"
		}
		fmt.Printf("%-4s %-25s %-30s %-8s %s%s\n", m.ID, m.Name, m.Email, m.Role, state, verified)
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	stats, err := a.api.Stats(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Total: %d\n", stats.Total)
	fmt.Printf("Active: %d / Inactive: %d\n", stats.Active, stats.Inactive)
	fmt.Printf("Verified: %d / Unverified: %d\n", stats.Verified, stats.Unverified)
	fmt.Printf("Profile complete: %d / incomplete: %d\n", stats.ProfileComplete, stats.ProfileIncomplete)
	return nil
}
