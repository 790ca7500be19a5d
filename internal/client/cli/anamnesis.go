package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// anamnesisQuestions is the intake questionnaire, asked in order. Keys are
// the stable identifiers the answers are stored under.
var anamnesisQuestions = []struct {
	key    string
	prompt string
}{
	{"mainGoal", "What is your main goal with training?"},
	{"experience", "How long have you been training?"},
	{"healthConditions", "Any health conditions we should know about?"},
	{"injuries", "Past or current injuries? (comma-separated)"},
	{"medication", "Are you on any medication?"},
	{"sleepHours", "How many hours do you sleep per night?"},
}

// Anamnesis runs the intake questionnaire and stores the answers for the
// signed-in user. Already-completed questionnaires can be retaken; the new
// answers replace the old ones.
func (a *App) Anamnesis(ctx context.Context) error {
	done, err := a.orchestrator.AnamnesisCompleted(ctx)
	if err != nil {
		return err
	}
	if done {
		answer, err := getSimpleText(a.reader, "Questionnaire already completed. Retake? (y/N)", os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			return nil
		}
	}

	answers := make(map[string]any, len(anamnesisQuestions))
	for _, q := range anamnesisQuestions {
		v, err := getSimpleText(a.reader, q.prompt, os.Stdout)
		if err != nil {
			return err
		}
		answers[q.key] = v
	}

	if err := a.orchestrator.CompleteAnamnesis(ctx, answers); err != nil {
		log.Printf("Saving questionnaire failed: %s", err.Error())
		return err
	}

	fmt.Println("Questionnaire saved. Your coach will review it shortly.")
	return nil
}
