package remote

import (
	"github.com/dmitrijs2005/gymtracker/internal/client/models"
	"github.com/dmitrijs2005/gymtracker/internal/client/provider"
)

// The row mapping is total: every profiles column maps to exactly one
// UserProfile field. A nil column and a zero field both mean "unset".

func rowToProfile(row *provider.ProfileRow) *models.UserProfile {
	if row == nil {
		return nil
	}
	p := &models.UserProfile{}
	if row.BirthDate != nil {
		p.BirthDate = *row.BirthDate
	}
	if row.HeightCm != nil {
		p.HeightCm = *row.HeightCm
	}
	if row.Goal != nil {
		p.Goal = models.Goal(*row.Goal)
	}
	if row.Gender != nil {
		p.Gender = models.Gender(*row.Gender)
	}
	if row.AvatarURL != nil {
		p.AvatarURL = *row.AvatarURL
	}
	if row.PlanStatus != nil {
		p.PlanStatus = models.PlanStatus(*row.PlanStatus)
	}
	if row.WeightGoalKg != nil {
		p.WeightGoalKg = *row.WeightGoalKg
	}
	if row.WeeklyFrequency != nil {
		p.WeeklyFrequency = *row.WeeklyFrequency
	}
	if row.Notes != nil {
		p.Notes = *row.Notes
	}
	p.Injuries = row.Injuries
	return p
}

func userToRow(user models.User) provider.ProfileRow {
	row := provider.ProfileRow{
		Name:  user.Name,
		Email: strPtr(user.Email),
	}
	p := user.Profile
	if p == nil {
		return row
	}
	row.BirthDate = strPtr(p.BirthDate)
	row.HeightCm = floatPtr(p.HeightCm)
	row.Goal = strPtr(string(p.Goal))
	row.Gender = strPtr(string(p.Gender))
	row.AvatarURL = strPtr(p.AvatarURL)
	row.PlanStatus = strPtr(string(p.PlanStatus))
	row.WeightGoalKg = floatPtr(p.WeightGoalKg)
	row.WeeklyFrequency = intPtr(p.WeeklyFrequency)
	row.Notes = strPtr(p.Notes)
	row.Injuries = p.Injuries
	return row
}

// Pointer helpers: unset fields serialize as explicit nulls so the row
// update can clear columns.

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func floatPtr(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func intPtr(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
