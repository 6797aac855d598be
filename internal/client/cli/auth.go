package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/rajanimaurya/internship-recommender/internal/common"
)

func (a *App) Register(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	location, err := GetSimpleText(a.reader, "Enter location (village/town/city)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	category, err := GetSimpleText(a.reader, "Enter category (general/obc/sc/st, optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	attemptText, err := GetSimpleText(a.reader, "Enter attempt number (1 for first try)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	attempt, err := strconv.Atoi(attemptText)
	if err != nil {
		attempt = 1
	}

	if err := a.apiClient.Register(ctx, userName, string(password), location, category, attempt); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			log.Printf("User name already taken")
			return
		}
		log.Printf("Registration unsuccessful: %s", err.Error())
		return
	}

	log.Printf("Registered. You can now log in.")
}

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	if err := a.apiClient.Login(ctx, userName, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	a.userName = userName
	a.setMode(ModeOnline)
	log.Printf("Login successful")
}

func (a *App) Logout(ctx context.Context) {
	a.apiClient.Logout()
	a.userName = ""
	log.Printf("Logged out")
}

// Profile updates the affirmative-action fields used by the ranking.
func (a *App) Profile(ctx context.Context) {

	location, err := GetSimpleText(a.reader, "Enter location (village/town/city)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	category, err := GetSimpleText(a.reader, "Enter category (general/obc/sc/st)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	attemptText, err := GetSimpleText(a.reader, "Enter attempt number", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	attempt, err := strconv.Atoi(attemptText)
	if err != nil {
		attempt = 1
	}

	if err := a.apiClient.UpdateProfile(ctx, location, category, attempt); err != nil {
		log.Printf("Profile update unsuccessful: %s", err.Error())
		return
	}
	log.Printf("Profile updated")
}
