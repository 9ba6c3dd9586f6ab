package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		log.Println(err.Error())
		return err
	}

	a.user = user
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Println(err.Error())
		return err
	}
	a.user = nil
	fmt.Println("Logged out")
	return nil
}
