package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"secureid/internal/domain/models"
)

const maskedGovernmentID = "••••••••••••••••"

func userID(id int64) string {
	return fmt.Sprintf("UID-%06d", id)
}

func memberSince(createdAt string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return "N/A"
	}
	return t.Format(time.DateOnly)
}

func renderProfile(w io.Writer, p models.Profile, showSensitive bool) {
	gov := maskedGovernmentID
	if showSensitive {
		gov = p.GovernmentID
	}

	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"User ID", userID(p.ID)},
		{"Member since", memberSince(p.CreatedAt)},
		{"Government ID", gov},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%-15s%s\n", r[0]+":", r[1])
	}
}

func renderUnmet(w io.Writer, unmet []string) {
	fmt.Fprintln(w, "Please fulfill all password requirements.")
	fmt.Fprintln(w, "  - "+strings.Join(unmet, "\n  - "))
}
