package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account through the
// orchestrator. A goal can be picked right away; it lands on the profile.
//
// In external mode the provider may require email confirmation before the
// first login; that case is reported to the user and is not an error of
// this command. The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	goal, err := getSimpleText(a.reader,
		"Training goal: emagrecer / ganhar_massa / condicionamento / forca / outros (optional)", os.Stdout)
	if err != nil {
		return err
	}

	form := models.RegisterForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}
	if goal != "" {
		form.Profile = &models.UserProfile{Goal: models.Goal(goal)}
	}

	if err := a.orchestrator.Register(ctx, form); err != nil {
		if errors.Is(err, common.ErrConfirmationRequired) {
			fmt.Println(err.Error())
			return nil
		}
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates through the orchestrator.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := models.LoginForm{Email: email, Password: string(password)}
	if err := a.orchestrator.Login(ctx, form); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout signs the user out. The local registry entry survives, so logging
// back in works.
func (a *App) Logout(ctx context.Context) error {
	a.orchestrator.Logout(ctx)
	fmt.Println("Signed out.")
	return nil
}
