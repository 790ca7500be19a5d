package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/client/services"
)

// Whoami prints the signed-in user and the essentials of the profile.
func (a *App) Whoami(ctx context.Context) error {
	user := a.orchestrator.State().User

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("  id:         %s\n", user.ID)
	fmt.Printf("  registered: %s\n", user.CreatedAt.Format("2006-01-02"))

	if p := user.Profile; p != nil {
		if p.Goal != "" {
			fmt.Printf("  goal:       %s\n", p.Goal)
		}
		if p.PlanStatus != "" {
			fmt.Printf("  plan:       %s\n", p.PlanStatus)
		}
		if p.WeeklyFrequency > 0 {
			fmt.Printf("  frequency:  %dx/week\n", p.WeeklyFrequency)
		}
		if p.AvatarURL != "" {
			fmt.Printf("  avatar:     %s\n", p.AvatarURL)
		}
	}

	done, err := a.orchestrator.AnamnesisCompleted(ctx)
	if err != nil {
		return err
	}
	if !done {
		fmt.Println("  anamnesis:  pending (run 'anamnesis')")
	}
	return nil
}

// promptKeep asks for a string value; empty input keeps the current one.
func promptKeep(reader *bufio.Reader, label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func promptKeepFloat(reader *bufio.Reader, label string, current float64) (float64, error) {
	cur := ""
	if current != 0 {
		cur = strconv.FormatFloat(current, 'f', -1, 64)
	}
	v, err := promptKeep(reader, label, cur)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func promptKeepInt(reader *bufio.Reader, label string, current int) (int, error) {
	cur := ""
	if current != 0 {
		cur = strconv.Itoa(current)
	}
	v, err := promptKeep(reader, label, cur)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// EditProfile walks the user through the profile fields. An empty answer
// keeps the current value. The write goes through the orchestrator, so the
// published state only moves after the backend confirms.
func (a *App) EditProfile(ctx context.Context) error {
	user := *a.orchestrator.State().User
	if user.Profile == nil {
		user.Profile = &models.UserProfile{}
	} else {
		p := *user.Profile
		user.Profile = &p
	}
	p := user.Profile

	var err error
	if user.Name, err = promptKeep(a.reader, "Name", user.Name); err != nil {
		return err
	}
	if p.BirthDate, err = promptKeep(a.reader, "Birth date (YYYY-MM-DD)", p.BirthDate); err != nil {
		return err
	}
	if p.HeightCm, err = promptKeepFloat(a.reader, "Height (cm)", p.HeightCm); err != nil {
		return err
	}
	goal, err := promptKeep(a.reader, "Goal (emagrecer/ganhar_massa/condicionamento/forca/outros)", string(p.Goal))
	if err != nil {
		return err
	}
	p.Goal = models.Goal(goal)
	if p.WeightGoalKg, err = promptKeepFloat(a.reader, "Target weight (kg)", p.WeightGoalKg); err != nil {
		return err
	}
	if p.WeeklyFrequency, err = promptKeepInt(a.reader, "Workouts per week", p.WeeklyFrequency); err != nil {
		return err
	}
	if p.Notes, err = promptKeep(a.reader, "Notes", p.Notes); err != nil {
		return err
	}

	if err := a.orchestrator.UpdateUser(ctx, user); err != nil {
		log.Printf("Profile update failed: %s", err.Error())
		return err
	}
	fmt.Println("Profile saved.")
	return nil
}

// UploadAvatar sends a local image to the object store and records its
// public URL on the profile.
func (a *App) UploadAvatar(ctx context.Context) error {
	user := *a.orchestrator.State().User

	path, err := getSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}

	url, err := a.avatars.Upload(ctx, user.ID, path)
	if err != nil {
		if errors.Is(err, services.ErrAvatarStorageDisabled) {
			fmt.Println("Avatar uploads are not configured on this client.")
			return nil
		}
		log.Printf("Avatar upload failed: %s", err.Error())
		return err
	}

	if user.Profile == nil {
		user.Profile = &models.UserProfile{}
	} else {
		p := *user.Profile
		user.Profile = &p
	}
	user.Profile.AvatarURL = url

	if err := a.orchestrator.UpdateUser(ctx, user); err != nil {
		return err
	}
	fmt.Printf("Avatar uploaded: %s\n", url)
	return nil
}
